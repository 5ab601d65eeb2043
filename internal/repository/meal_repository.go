package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"meal-planner-be/internal/apperrors"
	"meal-planner-be/internal/entities"
)

//go:generate mockgen -destination=../mocks/mock_meal_repository.go -package=mocks meal-planner-be/internal/repository MealRepository

// MealRepository is the meal store
type MealRepository interface {
	FindAll(ctx context.Context) ([]*entities.Meal, error)
	FindByID(ctx context.Context, id int64) (*entities.Meal, error)
	Create(ctx context.Context, meal *entities.Meal) (*entities.Meal, error)
	CreateBatch(ctx context.Context, items []IndexedMeal) (*BatchOutcome, error)
	MarkUsed(ctx context.Context, id int64, at time.Time) (*entities.Meal, error)
}

// IndexedMeal is a meal paired with its position in the submitted batch
type IndexedMeal struct {
	Index int
	Meal  *entities.Meal
}

// BatchFailure records an insert that the database rejected
type BatchFailure struct {
	Index int
	Err   error
}

// BatchOutcome lists what CreateBatch committed and what it skipped, both in input order
type BatchOutcome struct {
	Inserted []*entities.Meal
	Failures []BatchFailure
}

const mealColumns = `id, name, ingredients, last_used, url`

// savepointName scopes each bulk insert so a failed statement can be undone
// without aborting the surrounding transaction
const savepointName = "bulk_meal"

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

type mealRepository struct {
	db *sql.DB
}

// NewMealRepository creates a new meal repository
func NewMealRepository(db *sql.DB) MealRepository {
	return &mealRepository{db: db}
}

// FindAll returns every meal ordered by id
func (r *mealRepository) FindAll(ctx context.Context) ([]*entities.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Storage("failed to fetch meals", err)
	}
	defer rows.Close()

	meals := make([]*entities.Meal, 0)
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, apperrors.Storage("failed to scan meal", err)
		}
		meals = append(meals, meal)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("error iterating meals", err)
	}

	return meals, nil
}

func (r *mealRepository) FindByID(ctx context.Context, id int64) (*entities.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = $1`

	meal, err := scanMeal(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("Meal %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Storage("failed to find meal", err)
	}
	return meal, nil
}

// Create inserts a single meal and returns it with its assigned id
func (r *mealRepository) Create(ctx context.Context, meal *entities.Meal) (*entities.Meal, error) {
	created, err := insertMeal(ctx, r.db, meal)
	if err != nil {
		return nil, classify("failed to add meal", err)
	}
	return created, nil
}

// CreateBatch inserts all items in one transaction. A rejected insert is
// rolled back to its savepoint and reported in the outcome; the remaining
// items are still inserted and committed. Only failures of the transaction
// itself are returned as an error, in which case nothing is committed.
func (r *mealRepository) CreateBatch(ctx context.Context, items []IndexedMeal) (*BatchOutcome, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	outcome := &BatchOutcome{
		Inserted: make([]*entities.Meal, 0, len(items)),
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, "SAVEPOINT "+savepointName); err != nil {
			return nil, apperrors.Storage("failed to create savepoint", err)
		}

		meal, insertErr := insertMeal(ctx, tx, item.Meal)
		if insertErr != nil {
			if _, err := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepointName); err != nil {
				return nil, apperrors.Storage("failed to roll back to savepoint", multierr.Combine(
					fmt.Errorf("insert meal at index %d: %w", item.Index, insertErr),
					err,
				))
			}
			outcome.Failures = append(outcome.Failures, BatchFailure{
				Index: item.Index,
				Err:   classify("failed to insert meal", insertErr),
			})
			continue
		}

		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepointName); err != nil {
			return nil, apperrors.Storage("failed to release savepoint", err)
		}
		outcome.Inserted = append(outcome.Inserted, meal)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Storage("failed to commit transaction", err)
	}

	return outcome, nil
}

// MarkUsed sets last_used in a single statement so concurrent calls never overwrite each other's rows
func (r *mealRepository) MarkUsed(ctx context.Context, id int64, at time.Time) (*entities.Meal, error) {
	query := `
		UPDATE meals
		SET last_used = $1
		WHERE id = $2
		RETURNING ` + mealColumns

	meal, err := scanMeal(r.db.QueryRowContext(ctx, query, at.UTC(), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("Meal %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Storage("failed to update meal", err)
	}
	return meal, nil
}

func insertMeal(ctx context.Context, q rowQuerier, meal *entities.Meal) (*entities.Meal, error) {
	ingredients, err := entities.EncodeIngredients(meal.Ingredients)
	if err != nil {
		return nil, err
	}

	var lastUsed any
	if meal.LastUsed != nil {
		lastUsed = meal.LastUsed.UTC()
	}

	query := `
		INSERT INTO meals (name, ingredients, last_used, url)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + mealColumns

	return scanMeal(q.QueryRowContext(ctx, query, meal.Name, ingredients, lastUsed, meal.URL))
}

func scanMeal(row rowScanner) (*entities.Meal, error) {
	var (
		meal        entities.Meal
		ingredients string
		lastUsed    sql.NullTime
	)
	if err := row.Scan(&meal.ID, &meal.Name, &ingredients, &lastUsed, &meal.URL); err != nil {
		return nil, err
	}

	decoded, err := entities.DecodeIngredients(ingredients)
	if err != nil {
		return nil, err
	}
	meal.Ingredients = decoded

	if lastUsed.Valid {
		t := lastUsed.Time.UTC()
		meal.LastUsed = &t
	}
	return &meal, nil
}
