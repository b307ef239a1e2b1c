package menu

import (
	"fmt"
	"sort"
	"strings"
)

// mealTypes is the fixed ordered list of meal slot labels. A requested meal
// count beyond this list is capped, never padded.
var mealTypes = []string{"Breakfast", "Lunch", "Dinner"}

// mealRoles maps each slot role to its eligible food categories. The lists
// are ordered configuration: an earlier category wins even when a later one
// holds a higher-scoring food.
var mealRoles = []struct {
	name       string
	categories []string
}{
	{"protein", []string{"Protein", "Seafood", "Meat"}},
	{"side", []string{"Vegetarian", "Indian"}},
	{"drink", []string{"Drink"}},
}

// mealPlanMinScore is the "well recommended" cutoff a food must reach, for
// every requested condition, to be eligible for a meal plan.
const mealPlanMinScore = 70

// Classify evaluates every catalog food against each requested condition and
// buckets the results by status, each bucket sorted by score descending with
// ties kept in catalog order. An unknown condition yields empty buckets for
// its key; callers treat an absent and an empty key alike.
func (e *Engine) Classify(conditions []string) map[string]Classification {
	result := make(map[string]Classification, len(conditions))
	for _, cond := range conditions {
		var cls Classification
		rule, ok := e.rules.Get(cond)
		if !ok {
			result[cond] = cls
			continue
		}
		for _, food := range e.catalog.foods {
			v := evaluate(food, rule)
			ranked := RankedFood{
				ID:       food.ID,
				Name:     food.Name,
				Category: food.Category,
				Price:    food.Price,
				Score:    v.Score,
				Reason:   v.Reason,
			}
			switch v.Status {
			case StatusSafe:
				cls.Safe = append(cls.Safe, ranked)
			case StatusCaution:
				cls.Caution = append(cls.Caution, ranked)
			default:
				cls.Avoid = append(cls.Avoid, ranked)
			}
		}
		sortByScore(cls.Safe)
		sortByScore(cls.Caution)
		sortByScore(cls.Avoid)
		result[cond] = cls
	}
	return result
}

func sortByScore(foods []RankedFood) {
	sort.SliceStable(foods, func(i, j int) bool { return foods[i].Score > foods[j].Score })
}

// Recommend returns, per condition, the top maxItems of the safe bucket plus
// summary counts over the whole catalog. Truncation only slices the already
// sorted bucket; it never reorders.
func (e *Engine) Recommend(conditions []string, maxItems int) (map[string]Recommendation, error) {
	if len(conditions) == 0 {
		return nil, fmt.Errorf("%w: at least one health condition required", ErrInvalidInput)
	}
	if maxItems <= 0 {
		return nil, fmt.Errorf("%w: max items must be positive, got %d", ErrInvalidInput, maxItems)
	}
	classified := e.Classify(conditions)
	out := make(map[string]Recommendation, len(classified))
	for cond, cls := range classified {
		top := cls.Safe
		if len(top) > maxItems {
			top = top[:maxItems]
		}
		// Foods outside all three buckets were unknown for this condition,
		// which is the whole catalog when the condition itself is unknown.
		unknown := e.catalog.Len() - len(cls.Safe) - len(cls.Caution) - len(cls.Avoid)
		out[cond] = Recommendation{
			Foods:        append([]RankedFood(nil), top...),
			Count:        len(top),
			TotalSafe:    len(cls.Safe),
			TotalCaution: len(cls.Caution),
			TotalAvoid:   len(cls.Avoid),
			TotalUnknown: unknown,
		}
	}
	return out, nil
}

// BuildMealPlan assembles up to min(mealCount, len(mealTypes)) meal slots
// from foods that are safe for every requested condition and score at or
// above the well-recommended cutoff for each. Each slot attempts one pick
// per role, taking the highest-scoring eligible food in the role's first
// populated category. The same top food may repeat across slots; that
// repetition is intentional and preserved behavior. A slot with no eligible
// food in any role still appears, empty, with a zero calorie total.
func (e *Engine) BuildMealPlan(conditions []string, mealCount int) ([]MealSlot, error) {
	if len(conditions) == 0 {
		return nil, fmt.Errorf("%w: at least one health condition required", ErrInvalidInput)
	}
	if mealCount <= 0 {
		return nil, fmt.Errorf("%w: meal count must be positive, got %d", ErrInvalidInput, mealCount)
	}

	type scoredFood struct {
		food  FoodItem
		score int
	}
	byCategory := make(map[string][]scoredFood)
	for _, food := range e.catalog.foods {
		eligible := true
		// Rank by the worst per-condition score: the binding constraint.
		worst := 100
		for _, cond := range conditions {
			v := e.Validate(food.ID, cond)
			if v.Status != StatusSafe || v.Score < mealPlanMinScore {
				eligible = false
				break
			}
			if v.Score < worst {
				worst = v.Score
			}
		}
		if eligible {
			byCategory[food.Category] = append(byCategory[food.Category], scoredFood{food: food, score: worst})
		}
	}
	for cat := range byCategory {
		group := byCategory[cat]
		sort.SliceStable(group, func(i, j int) bool { return group[i].score > group[j].score })
	}

	slots := mealCount
	if slots > len(mealTypes) {
		slots = len(mealTypes)
	}
	plan := make([]MealSlot, 0, slots)
	for i := 0; i < slots; i++ {
		slot := MealSlot{MealType: mealTypes[i], Foods: []PlanFood{}}
		for _, role := range mealRoles {
			for _, cat := range role.categories {
				group := byCategory[cat]
				if len(group) == 0 {
					continue
				}
				pick := group[0]
				slot.Foods = append(slot.Foods, PlanFood{
					ID:       pick.food.ID,
					Name:     pick.food.Name,
					Category: pick.food.Category,
					Score:    pick.score,
					Calories: pick.food.Nutrients.Calories,
					ProteinG: pick.food.Nutrients.ProteinG,
					CarbsG:   pick.food.Nutrients.CarbsG,
				})
				slot.TotalCalories += pick.food.Nutrients.Calories
				break
			}
		}
		plan = append(plan, slot)
	}
	return plan, nil
}

// FilterByExcludedAllergens returns every catalog food whose allergen tags
// have no overlap with the excluded set, in catalog order. An empty excluded
// set returns the full catalog unchanged.
func (e *Engine) FilterByExcludedAllergens(excluded []string) []FoodItem {
	if len(excluded) == 0 {
		return e.catalog.Foods()
	}
	blocked := make(map[string]struct{}, len(excluded))
	for _, tag := range excluded {
		blocked[strings.ToLower(tag)] = struct{}{}
	}
	out := []FoodItem{}
	for _, food := range e.catalog.foods {
		clash := false
		for _, tag := range food.Allergens {
			if _, ok := blocked[strings.ToLower(tag)]; ok {
				clash = true
				break
			}
		}
		if !clash {
			out = append(out, food)
		}
	}
	return out
}

// comparableNutrients is the fixed field set Compare reports differences
// over.
var comparableNutrients = []Nutrient{
	NutrientCalories,
	NutrientProtein,
	NutrientCarbs,
	NutrientFat,
	NutrientSodium,
	NutrientFiber,
	NutrientSugar,
}

// Compare returns both foods' nutrient bundles and the field-wise difference
// computed as second minus first. Both identifiers must resolve.
func (e *Engine) Compare(firstID, secondID string) (*FoodComparison, error) {
	first, ok := e.catalog.Get(firstID)
	if !ok {
		return nil, fmt.Errorf("food %q: %w", firstID, ErrNotFound)
	}
	second, ok := e.catalog.Get(secondID)
	if !ok {
		return nil, fmt.Errorf("food %q: %w", secondID, ErrNotFound)
	}
	diff := make(map[string]float64, len(comparableNutrients))
	for _, n := range comparableNutrients {
		diff[string(n)] = second.Nutrients.Value(n) - first.Nutrients.Value(n)
	}
	return &FoodComparison{
		Foods: [2]ComparedFood{
			{ID: first.ID, Name: first.Name, Category: first.Category, Nutrients: first.Nutrients},
			{ID: second.ID, Name: second.Name, Category: second.Category, Nutrients: second.Nutrients},
		},
		Differences: diff,
	}, nil
}
