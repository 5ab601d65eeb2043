package models

import "time"

// MealRequest is the body of POST /meals and one element of POST /meals/bulk.
// The meal service checks required fields.
type MealRequest struct {
	Name        string     `json:"name"`
	Ingredients []string   `json:"ingredients"`
	LastUsed    *time.Time `json:"lastUsed,omitempty"` // ISO 8601, optional
	URL         string     `json:"url"`
}
