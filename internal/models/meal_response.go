package models

import "meal-planner-be/internal/entities"

// MealResponse wraps a single meal with a status message
type MealResponse struct {
	Message string         `json:"message"`
	Meal    *entities.Meal `json:"meal"`
}

// BulkError reports why the record at Index (position in the request array) was not stored
type BulkError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BulkResult is the outcome of POST /meals/bulk
type BulkResult struct {
	Message  string      `json:"message"`
	Inserted int         `json:"inserted"`
	Errors   []BulkError `json:"errors,omitempty"`
}

// Partial reports whether at least one record was rejected
func (r *BulkResult) Partial() bool {
	return len(r.Errors) > 0
}
