package repository

import (
	"context"
	"database/sql"
	"errors"

	"meal-planner-be/internal/apperrors"
	"meal-planner-be/internal/entities"
)

//go:generate mockgen -destination=../mocks/mock_user_repository.go -package=mocks meal-planner-be/internal/repository UserRepository

// UserRepository is the credential store
type UserRepository interface {
	Create(ctx context.Context, username, passwordHash string) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByID(ctx context.Context, id int64) (*entities.User, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a user. A taken username surfaces as apperrors.ErrConflict.
func (r *userRepository) Create(ctx context.Context, username, passwordHash string) (*entities.User, error) {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, username, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Wrap(apperrors.ErrConflict, "User already exists", err)
		}
		return nil, apperrors.Storage("failed to create user", err)
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) scanOne(row *sql.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("user not found")
	}
	if err != nil {
		return nil, apperrors.Storage("failed to find user", err)
	}
	return &user, nil
}
