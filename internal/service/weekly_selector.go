package service

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"meal-planner-be/internal/apperrors"
	"meal-planner-be/internal/entities"
)

// WeeklyMealCount is the size of a weekly selection
const WeeklyMealCount = 7

// SelectWeekly picks up to WeeklyMealCount meals, preferring the ones that
// have gone unused the longest, and returns them in random order.
//
// Membership is deterministic: meals are ranked by lastUsed ascending with
// never-used meals first and ties broken by id. Only the order of the chosen
// prefix is shuffled. The input slice is not modified. A nil rng uses the
// package-level source.
func SelectWeekly(meals []*entities.Meal, rng *rand.Rand) ([]*entities.Meal, error) {
	if len(meals) == 0 {
		return nil, apperrors.New(apperrors.ErrEmptyCollection, "No meals found")
	}

	ranked := slices.Clone(meals)
	slices.SortStableFunc(ranked, compareLeastRecentlyUsed)

	n := min(WeeklyMealCount, len(ranked))
	selected := ranked[:n:n]

	swap := func(i, j int) { selected[i], selected[j] = selected[j], selected[i] }
	if rng != nil {
		rng.Shuffle(n, swap)
	} else {
		rand.Shuffle(n, swap)
	}

	return selected, nil
}

func compareLeastRecentlyUsed(a, b *entities.Meal) int {
	switch {
	case a.LastUsed == nil && b.LastUsed != nil:
		return -1
	case a.LastUsed != nil && b.LastUsed == nil:
		return 1
	case a.LastUsed != nil && b.LastUsed != nil:
		if c := a.LastUsed.Compare(*b.LastUsed); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.ID, b.ID)
}
