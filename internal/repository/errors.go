package repository

import (
	"errors"

	"github.com/lib/pq"

	"meal-planner-be/internal/apperrors"
)

// uniqueViolation is the postgres SQLSTATE for unique_violation
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// classify converts a driver error into the application error taxonomy
func classify(msg string, err error) error {
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.ErrConflict, msg, err)
	}
	return apperrors.Storage(msg, err)
}
