package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

// Meal represents a recipe row in the meals table
type Meal struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Ingredients []string   `json:"ingredients"`
	LastUsed    *time.Time `json:"lastUsed"` // nil means the meal was never used
	URL         string     `json:"url"`
}

// EncodeIngredients serializes an ingredient list for the TEXT column.
// A nil list is stored as an empty array so it never reads back as null.
func EncodeIngredients(ingredients []string) (string, error) {
	if ingredients == nil {
		ingredients = []string{}
	}
	data, err := json.Marshal(ingredients)
	if err != nil {
		return "", fmt.Errorf("failed to encode ingredients: %w", err)
	}
	return string(data), nil
}

// DecodeIngredients is the inverse of EncodeIngredients for valid UTF-8
// input; json.Marshal replaces invalid bytes with U+FFFD.
func DecodeIngredients(raw string) ([]string, error) {
	ingredients := []string{}
	if raw == "" {
		return ingredients, nil
	}
	if err := json.Unmarshal([]byte(raw), &ingredients); err != nil {
		return nil, fmt.Errorf("failed to decode ingredients: %w", err)
	}
	if ingredients == nil {
		ingredients = []string{}
	}
	return ingredients, nil
}
