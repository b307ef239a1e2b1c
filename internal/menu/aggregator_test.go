package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBucketsAreDisjointAndCoverCatalog(t *testing.T) {
	e := testEngine()
	conditions := []string{"diabetes", "celiac", "hypertension", "kidney", "lactose", "gout", "ibs"}
	result := e.Classify(conditions)
	require.Len(t, result, len(conditions))

	for cond, cls := range result {
		seen := make(map[string]int)
		for _, bucket := range [][]RankedFood{cls.Safe, cls.Caution, cls.Avoid} {
			for _, f := range bucket {
				seen[f.ID]++
			}
		}
		assert.Len(t, seen, SeedCatalog().Len(), "condition %s must cover the catalog", cond)
		for id, n := range seen {
			assert.Equal(t, 1, n, "food %s appears %d times for %s", id, n, cond)
		}
	}
}

func TestClassifyBucketsSortedByScoreStable(t *testing.T) {
	e := testEngine()
	cls := e.Classify([]string{"diabetes"})["diabetes"]

	for _, bucket := range [][]RankedFood{cls.Safe, cls.Caution, cls.Avoid} {
		for i := 1; i < len(bucket); i++ {
			assert.GreaterOrEqual(t, bucket[i-1].Score, bucket[i].Score)
		}
	}

	// lentils is the only 100; the 90-point tie keeps catalog order.
	require.NotEmpty(t, cls.Safe)
	assert.Equal(t, "lentils", cls.Safe[0].ID)
	var ninety []string
	for _, f := range cls.Safe {
		if f.Score == 90 {
			ninety = append(ninety, f.ID)
		}
	}
	assert.Equal(t, []string{"tandoori", "salmon", "grilled_meat", "rice", "green_tea", "bottle"}, ninety)
}

func TestClassifyUnknownConditionYieldsEmptyBuckets(t *testing.T) {
	e := testEngine()
	result := e.Classify([]string{"martian_flu"})
	cls, ok := result["martian_flu"]
	require.True(t, ok)
	assert.Empty(t, cls.Safe)
	assert.Empty(t, cls.Caution)
	assert.Empty(t, cls.Avoid)
}

func TestRecommendTruncatesWithoutReordering(t *testing.T) {
	e := testEngine()
	full, err := e.Recommend([]string{"celiac"}, 100)
	require.NoError(t, err)
	top, err := e.Recommend([]string{"celiac"}, 3)
	require.NoError(t, err)

	fullRec := full["celiac"]
	topRec := top["celiac"]
	require.Equal(t, 3, topRec.Count)
	assert.Equal(t, fullRec.Foods[:3], topRec.Foods)
	assert.Equal(t, fullRec.TotalSafe, topRec.TotalSafe)
	assert.Equal(t, fullRec.TotalCaution, topRec.TotalCaution)
	assert.Equal(t, fullRec.TotalAvoid, topRec.TotalAvoid)
}

func TestRecommendCountsPartitionCatalog(t *testing.T) {
	e := testEngine()
	recs, err := e.Recommend([]string{"diabetes", "celiac", "martian_flu"}, 5)
	require.NoError(t, err)

	for cond, rec := range recs {
		total := rec.TotalSafe + rec.TotalCaution + rec.TotalAvoid + rec.TotalUnknown
		assert.Equal(t, SeedCatalog().Len(), total, "condition %s", cond)
		assert.LessOrEqual(t, rec.Count, 5)
		assert.Equal(t, len(rec.Foods), rec.Count)
	}

	// A condition outside the rule table knows nothing about any food.
	unknown := recs["martian_flu"]
	assert.Empty(t, unknown.Foods)
	assert.Equal(t, SeedCatalog().Len(), unknown.TotalUnknown)

	diabetes := recs["diabetes"]
	assert.Equal(t, 11, diabetes.TotalSafe)
	assert.Equal(t, 2, diabetes.TotalCaution)
	assert.Equal(t, 0, diabetes.TotalAvoid)
	assert.Equal(t, 0, diabetes.TotalUnknown)
	assert.Equal(t, []string{"lentils", "hamburger", "tandoori", "salmon", "grilled_meat"},
		rankedIDs(diabetes.Foods))
}

func rankedIDs(foods []RankedFood) []string {
	ids := make([]string, 0, len(foods))
	for _, f := range foods {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestRecommendRejectsBadInput(t *testing.T) {
	e := testEngine()

	_, err := e.Recommend(nil, 5)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.Recommend([]string{"diabetes"}, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.Recommend([]string{"diabetes"}, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildMealPlanCapsSlotsAtKnownMealTypes(t *testing.T) {
	e := testEngine()
	plan, err := e.BuildMealPlan([]string{"diabetes"}, 5)
	require.NoError(t, err)
	require.Len(t, plan, 3)
	assert.Equal(t, "Breakfast", plan[0].MealType)
	assert.Equal(t, "Lunch", plan[1].MealType)
	assert.Equal(t, "Dinner", plan[2].MealType)
}

func TestBuildMealPlanRepeatsTopPicksAcrossSlots(t *testing.T) {
	e := testEngine()
	plan, err := e.BuildMealPlan([]string{"diabetes"}, 3)
	require.NoError(t, err)
	require.Len(t, plan, 3)

	// Best protein, side and drink for diabetes: tandoori (90), lentils
	// (100), green tea (90). Every slot picks the same trio; repetition
	// across slots is intentional.
	for _, slot := range plan {
		require.Len(t, slot.Foods, 3)
		assert.Equal(t, "tandoori", slot.Foods[0].ID)
		assert.Equal(t, "lentils", slot.Foods[1].ID)
		assert.Equal(t, "green_tea", slot.Foods[2].ID)
		assert.Equal(t, 280.0+230+2, slot.TotalCalories)
	}
}

func TestBuildMealPlanIntersectsConditions(t *testing.T) {
	e := testEngine()
	// Kidney limits protein to 25g, which disqualifies every protein-role
	// food, so slots carry only a side and a drink.
	plan, err := e.BuildMealPlan([]string{"diabetes", "kidney"}, 1)
	require.NoError(t, err)
	require.Len(t, plan, 1)

	slot := plan[0]
	require.Len(t, slot.Foods, 2)
	assert.Equal(t, "fruit", slot.Foods[0].ID)
	assert.Equal(t, "green_tea", slot.Foods[1].ID)
	assert.Equal(t, 82.0, slot.TotalCalories)
}

func TestBuildMealPlanEmptySlotsStillAppear(t *testing.T) {
	catalog := NewCatalog([]FoodItem{
		{ID: "brine", Name: "Brine Soup", Category: "Vegetarian",
			Nutrients: Nutrients{SodiumMg: 2500}, PurineLevel: PurineLow},
	})
	e := NewEngine(catalog, DefaultRules())
	plan, err := e.BuildMealPlan([]string{"hypertension"}, 2)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	for _, slot := range plan {
		assert.Empty(t, slot.Foods)
		assert.Zero(t, slot.TotalCalories)
	}
}

func TestBuildMealPlanUnknownConditionEliminatesEverything(t *testing.T) {
	e := testEngine()
	plan, err := e.BuildMealPlan([]string{"diabetes", "martian_flu"}, 3)
	require.NoError(t, err)
	require.Len(t, plan, 3)
	for _, slot := range plan {
		assert.Empty(t, slot.Foods)
	}
}

func TestBuildMealPlanRejectsBadInput(t *testing.T) {
	e := testEngine()

	_, err := e.BuildMealPlan(nil, 3)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.BuildMealPlan([]string{"diabetes"}, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFilterByExcludedAllergensEmptyIsPassThrough(t *testing.T) {
	e := testEngine()
	got := e.FilterByExcludedAllergens(nil)
	assert.Equal(t, SeedCatalog().Foods(), got)
}

func TestFilterByExcludedAllergens(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name     string
		excluded []string
		wantGone []string
	}{
		{
			name:     "gluten removes wheat-based items",
			excluded: []string{"gluten"},
			wantGone: []string{"biryani", "pizza", "hamburger", "chocolate_cake"},
		},
		{
			name:     "fish and dairy",
			excluded: []string{"fish", "dairy"},
			wantGone: []string{"salmon", "pizza", "hamburger", "chocolate_cake"},
		},
		{
			name:     "tags match case-insensitively",
			excluded: []string{"GLUTEN"},
			wantGone: []string{"biryani", "pizza", "hamburger", "chocolate_cake"},
		},
		{
			name:     "unknown tag removes nothing",
			excluded: []string{"sesame"},
			wantGone: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.FilterByExcludedAllergens(tt.excluded)
			gone := make(map[string]struct{}, len(tt.wantGone))
			for _, id := range tt.wantGone {
				gone[id] = struct{}{}
			}
			var want []string
			for _, f := range SeedCatalog().Foods() {
				if _, skip := gone[f.ID]; !skip {
					want = append(want, f.ID)
				}
			}
			var gotIDs []string
			for _, f := range got {
				gotIDs = append(gotIDs, f.ID)
			}
			assert.Equal(t, want, gotIDs)
		})
	}
}

func TestCompareDifferencesAreSecondMinusFirst(t *testing.T) {
	e := testEngine()
	cmp, err := e.Compare("salmon", "steak")
	require.NoError(t, err)

	assert.Equal(t, "salmon", cmp.Foods[0].ID)
	assert.Equal(t, "steak", cmp.Foods[1].ID)
	assert.Equal(t, map[string]float64{
		"calories":  70,
		"protein_g": 5,
		"carbs_g":   0,
		"fat_g":     5,
		"sodium_mg": 200,
		"fiber_g":   0,
		"sugar_g":   0,
	}, cmp.Differences)

	// Swapping the order flips every sign.
	flipped, err := e.Compare("steak", "salmon")
	require.NoError(t, err)
	for field, diff := range cmp.Differences {
		assert.Equal(t, -diff, flipped.Differences[field], field)
	}
}

func TestCompareUnknownFood(t *testing.T) {
	e := testEngine()

	_, err := e.Compare("salmon", "unicorn_steak")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "unicorn_steak")

	_, err = e.Compare("unicorn_steak", "salmon")
	require.ErrorIs(t, err, ErrNotFound)
}
