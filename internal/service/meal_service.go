package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"meal-planner-be/internal/apperrors"
	"meal-planner-be/internal/cache"
	"meal-planner-be/internal/entities"
	"meal-planner-be/internal/models"
	"meal-planner-be/internal/repository"
)

//go:generate mockgen -destination=../mocks/mock_meal_service.go -package=mocks meal-planner-be/internal/service MealService

// MealService defines the meal business logic
type MealService interface {
	ListMeals(ctx context.Context) ([]*entities.Meal, error)
	GetMeal(ctx context.Context, id int64) (*entities.Meal, error)
	CreateMeal(ctx context.Context, req *models.MealRequest) (*entities.Meal, error)
	BulkCreate(ctx context.Context, records []json.RawMessage) (*models.BulkResult, error)
	WeeklySelection(ctx context.Context) ([]*entities.Meal, error)
	MarkUsed(ctx context.Context, id int64) (*entities.Meal, error)
}

const mealsCacheKey = "meals:all"

type mealService struct {
	repo     repository.MealRepository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time

	// cacheMu orders list refills against invalidations; cacheGen counts invalidations.
	cacheMu  sync.Mutex
	cacheGen uint64

	rngMu sync.Mutex
	rng   *rand.Rand
}

type MealServiceOption func(*mealService)

// WithClock overrides the time source used when marking meals as used
func WithClock(now func() time.Time) MealServiceOption {
	return func(s *mealService) { s.now = now }
}

// WithRand makes weekly ordering reproducible
func WithRand(rng *rand.Rand) MealServiceOption {
	return func(s *mealService) { s.rng = rng }
}

// NewMealService creates a new meal service. cacheClient may be nil.
func NewMealService(repo repository.MealRepository, cacheClient cache.Cache, cacheTTL time.Duration, logger *slog.Logger, opts ...MealServiceOption) MealService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	svc := &mealService{
		repo:     repo,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
	// Only set cache if provided (allows graceful degradation)
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *mealService) ListMeals(ctx context.Context) ([]*entities.Meal, error) {
	if s.cache != nil {
		var cached []*entities.Meal
		err := s.cache.GetJSON(ctx, mealsCacheKey, &cached)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil && !errors.Is(err, cache.ErrMiss) {
			s.logger.WarnContext(ctx, "meal cache read failed", "error", err)
		}
	}

	gen := s.cacheGeneration()

	meals, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.refill(ctx, gen, meals)
	}
	return meals, nil
}

func (s *mealService) cacheGeneration() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.cacheGen
}

// refill stores meals unless a mutation invalidated the cache after they were loaded
func (s *mealService) refill(ctx context.Context, loadedAt uint64, meals []*entities.Meal) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.cacheGen != loadedAt {
		s.logger.DebugContext(ctx, "skipping stale meal cache refill")
		return
	}
	if err := s.cache.SetJSON(ctx, mealsCacheKey, meals, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "meal cache write failed", "error", err)
	}
}

func (s *mealService) GetMeal(ctx context.Context, id int64) (*entities.Meal, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *mealService) CreateMeal(ctx context.Context, req *models.MealRequest) (*entities.Meal, error) {
	meal, err := mealFromRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, meal)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return created, nil
}

// BulkCreate validates every record on its own and stores the valid ones in a
// single transaction. Invalid records and records the database rejects are
// reported by their index in records; neither stops the rest of the batch.
func (s *mealService) BulkCreate(ctx context.Context, records []json.RawMessage) (*models.BulkResult, error) {
	if len(records) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidBatch, "Meals must be a non-empty array")
	}

	var bulkErrors []models.BulkError
	items := make([]repository.IndexedMeal, 0, len(records))
	for i, raw := range records {
		meal, err := decodeMealRecord(raw)
		if err != nil {
			bulkErrors = append(bulkErrors, models.BulkError{
				Index: i,
				Error: apperrors.PublicMessage(err, "Invalid meal record"),
			})
			continue
		}
		items = append(items, repository.IndexedMeal{Index: i, Meal: meal})
	}

	inserted := 0
	if len(items) > 0 {
		outcome, err := s.repo.CreateBatch(ctx, items)
		if err != nil {
			return nil, err
		}
		inserted = len(outcome.Inserted)

		for _, failure := range outcome.Failures {
			s.logger.WarnContext(ctx, "bulk meal insert rejected", "index", failure.Index, "error", failure.Err)
			bulkErrors = append(bulkErrors, models.BulkError{
				Index: failure.Index,
				Error: apperrors.PublicMessage(failure.Err, "Failed to insert meal"),
			})
		}

		if inserted > 0 {
			s.invalidate(ctx)
		}
	}

	slices.SortStableFunc(bulkErrors, func(a, b models.BulkError) int { return a.Index - b.Index })

	if len(bulkErrors) > 0 {
		return &models.BulkResult{
			Message:  "Some meals failed to insert",
			Inserted: inserted,
			Errors:   bulkErrors,
		}, nil
	}
	return &models.BulkResult{
		Message:  "Meals added successfully",
		Inserted: inserted,
	}, nil
}

func (s *mealService) WeeklySelection(ctx context.Context) ([]*entities.Meal, error) {
	meals, err := s.ListMeals(ctx)
	if err != nil {
		return nil, err
	}

	if s.rng == nil {
		return SelectWeekly(meals, nil)
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return SelectWeekly(meals, s.rng)
}

func (s *mealService) MarkUsed(ctx context.Context, id int64) (*entities.Meal, error) {
	meal, err := s.repo.MarkUsed(ctx, id, s.now())
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return meal, nil
}

func (s *mealService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cacheGen++
	if err := s.cache.Delete(ctx, mealsCacheKey); err != nil {
		s.logger.WarnContext(ctx, "meal cache invalidation failed", "error", err)
	}
}

func decodeMealRecord(raw json.RawMessage) (*entities.Meal, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, apperrors.Validationf("Meal record must be an object")
	}

	var req models.MealRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "Invalid meal record", err)
	}
	return mealFromRequest(&req)
}

func mealFromRequest(req *models.MealRequest) (*entities.Meal, error) {
	name := strings.TrimSpace(req.Name)
	url := strings.TrimSpace(req.URL)

	switch {
	case name == "":
		return nil, apperrors.Validationf("Missing required field: name")
	case len(req.Ingredients) == 0:
		return nil, apperrors.Validationf("Missing required field: ingredients")
	case url == "":
		return nil, apperrors.Validationf("Missing required field: url")
	case !utf8.ValidString(name) || !utf8.ValidString(url):
		return nil, apperrors.Validationf("Meal text must be valid UTF-8")
	}
	for _, ingredient := range req.Ingredients {
		if !utf8.ValidString(ingredient) {
			return nil, apperrors.Validationf("Meal text must be valid UTF-8")
		}
	}

	meal := &entities.Meal{
		Name:        name,
		Ingredients: slices.Clone(req.Ingredients),
		URL:         url,
	}
	if req.LastUsed != nil {
		lastUsed := req.LastUsed.UTC()
		meal.LastUsed = &lastUsed
	}
	return meal, nil
}
