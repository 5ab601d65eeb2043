package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"meal-planner-be/internal/apperrors"
	"meal-planner-be/internal/entities"
)

var mealRowColumns = []string{"id", "name", "ingredients", "last_used", "url"}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestMealRepository_FindAll_DecodesIngredientsAndNullLastUsed(t *testing.T) {
	db, mock := newMockDB(t)
	used := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, ingredients, last_used, url FROM meals ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows(mealRowColumns).
			AddRow(int64(1), "Tacos", `["tortilla","beef"]`, nil, "https://example.com/tacos").
			AddRow(int64(2), "Soup", `[]`, used, "https://example.com/soup"))

	meals, err := NewMealRepository(db).FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(meals))
	}
	if meals[0].LastUsed != nil {
		t.Fatalf("expected nil lastUsed for never-used meal, got %v", meals[0].LastUsed)
	}
	if len(meals[0].Ingredients) != 2 || meals[0].Ingredients[1] != "beef" {
		t.Fatalf("ingredients not decoded: %q", meals[0].Ingredients)
	}
	if meals[1].LastUsed == nil || !meals[1].LastUsed.Equal(used) {
		t.Fatalf("lastUsed mismatch: %v", meals[1].LastUsed)
	}
	if meals[1].Ingredients == nil || len(meals[1].Ingredients) != 0 {
		t.Fatalf("expected empty ingredients, got %#v", meals[1].Ingredients)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMealRepository_FindAll_StorageError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	_, err := NewMealRepository(db).FindAll(context.Background())
	if !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestMealRepository_MarkUsed_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE meals SET last_used = $1 WHERE id = $2")).
		WithArgs(sqlmock.AnyArg(), int64(42)).
		WillReturnRows(sqlmock.NewRows(mealRowColumns))

	_, err := NewMealRepository(db).MarkUsed(context.Background(), 42, time.Now())
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMealRepository_MarkUsed_ReturnsUpdatedRow(t *testing.T) {
	db, mock := newMockDB(t)
	at := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE meals")).
		WithArgs(at, int64(7)).
		WillReturnRows(sqlmock.NewRows(mealRowColumns).AddRow(int64(7), "Curry", `["rice"]`, at, "u"))

	meal, err := NewMealRepository(db).MarkUsed(context.Background(), 7, at)
	if err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}
	if meal.ID != 7 || meal.LastUsed == nil || !meal.LastUsed.Equal(at) {
		t.Fatalf("unexpected meal: %+v", meal)
	}
}

func TestMealRepository_Create_UniqueViolationIsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO meals")).
		WithArgs("Tacos", `["tortilla"]`, sqlmock.AnyArg(), "u").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := NewMealRepository(db).Create(context.Background(), &entities.Meal{
		Name:        "Tacos",
		Ingredients: []string{"tortilla"},
		URL:         "u",
	})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestMealRepository_CreateBatch_FailedInsertDoesNotAbortBatch(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()

	mock.ExpectExec("^SAVEPOINT bulk_meal$").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO meals")).
		WithArgs("A", `["x"]`, sqlmock.AnyArg(), "u1").
		WillReturnRows(sqlmock.NewRows(mealRowColumns).AddRow(int64(1), "A", `["x"]`, nil, "u1"))
	mock.ExpectExec("^RELEASE SAVEPOINT bulk_meal$").WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec("^SAVEPOINT bulk_meal$").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO meals")).
		WithArgs("B", `["y"]`, sqlmock.AnyArg(), "u2").
		WillReturnError(&pq.Error{Code: "23514", Message: "check constraint"})
	mock.ExpectExec("^ROLLBACK TO SAVEPOINT bulk_meal$").WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec("^SAVEPOINT bulk_meal$").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO meals")).
		WithArgs("C", `["z"]`, sqlmock.AnyArg(), "u3").
		WillReturnRows(sqlmock.NewRows(mealRowColumns).AddRow(int64(2), "C", `["z"]`, nil, "u3"))
	mock.ExpectExec("^RELEASE SAVEPOINT bulk_meal$").WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectCommit()

	items := []IndexedMeal{
		{Index: 0, Meal: &entities.Meal{Name: "A", Ingredients: []string{"x"}, URL: "u1"}},
		{Index: 2, Meal: &entities.Meal{Name: "B", Ingredients: []string{"y"}, URL: "u2"}},
		{Index: 3, Meal: &entities.Meal{Name: "C", Ingredients: []string{"z"}, URL: "u3"}},
	}

	outcome, err := NewMealRepository(db).CreateBatch(context.Background(), items)
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if len(outcome.Inserted) != 2 || outcome.Inserted[0].ID != 1 || outcome.Inserted[1].ID != 2 {
		t.Fatalf("unexpected inserted meals: %+v", outcome.Inserted)
	}
	if len(outcome.Failures) != 1 || outcome.Failures[0].Index != 2 {
		t.Fatalf("unexpected failures: %+v", outcome.Failures)
	}
	if !errors.Is(outcome.Failures[0].Err, apperrors.ErrStorage) {
		t.Fatalf("expected storage kind on failure, got %v", outcome.Failures[0].Err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMealRepository_CreateBatch_BeginFailureIsFatal(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	_, err := NewMealRepository(db).CreateBatch(context.Background(), []IndexedMeal{
		{Index: 0, Meal: &entities.Meal{Name: "A", Ingredients: []string{"x"}, URL: "u"}},
	})
	if !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMealRepository_CreateBatch_CommitFailureIsFatal(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("^SAVEPOINT bulk_meal$").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO meals")).
		WillReturnRows(sqlmock.NewRows(mealRowColumns).AddRow(int64(1), "A", `["x"]`, nil, "u"))
	mock.ExpectExec("^RELEASE SAVEPOINT bulk_meal$").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	outcome, err := NewMealRepository(db).CreateBatch(context.Background(), []IndexedMeal{
		{Index: 0, Meal: &entities.Meal{Name: "A", Ingredients: []string{"x"}, URL: "u"}},
	})
	if outcome != nil {
		t.Fatalf("expected no outcome on commit failure, got %+v", outcome)
	}
	if !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "hash").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := NewUserRepository(db).Create(context.Background(), "alice", "hash")
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))

	_, err := NewUserRepository(db).FindByUsername(context.Background(), "ghost")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(int64(4), "alice", "hash", created))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))

	repo := NewUserRepository(db)
	user, err := repo.FindByID(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 4 || user.Username != "alice" || !user.CreatedAt.Equal(created) {
		t.Errorf("user = %+v", user)
	}

	if _, err := repo.FindByID(context.Background(), 5); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
