package menu

// Status classifies how well a food fits a health condition.
type Status string

const (
	StatusSafe    Status = "safe"
	StatusCaution Status = "caution"
	StatusAvoid   Status = "avoid"
	StatusUnknown Status = "unknown"
)

// PurineLevel is the categorical purine content of a food.
type PurineLevel string

const (
	PurineLow      PurineLevel = "low"
	PurineMedium   PurineLevel = "medium"
	PurineHigh     PurineLevel = "high"
	PurineVeryHigh PurineLevel = "very_high"
)

// Nutrients is the per-serving nutrient bundle of a food item.
type Nutrients struct {
	Calories float64 `json:"calories"`
	SodiumMg float64 `json:"sodium_mg"`
	SugarG   float64 `json:"sugar_g"`
	ProteinG float64 `json:"protein_g"`
	FiberG   float64 `json:"fiber_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
}

// FoodItem is one catalog entry. Items are immutable once loaded; the
// catalog snapshot they live in is replaced wholesale on reload.
type FoodItem struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Category        string      `json:"category"`
	Description     string      `json:"description,omitempty"`
	Price           float64     `json:"price"`
	Nutrients       Nutrients   `json:"nutrition"`
	ContainsGluten  bool        `json:"contains_gluten"`
	ContainsLactose bool        `json:"contains_lactose"`
	PurineLevel     PurineLevel `json:"purine_level"`
	Allergens       []string    `json:"allergens,omitempty"`
}

// Verdict is the result of evaluating one food against one condition.
type Verdict struct {
	Status     Status   `json:"status"`
	Score      int      `json:"score"`
	Violations []string `json:"violations,omitempty"`
	Reason     string   `json:"reason"`
}

// RankedFood pairs a food summary with its evaluation for sorted listings.
type RankedFood struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Score    int     `json:"score"`
	Reason   string  `json:"reason"`
}

// Classification buckets every catalog food for one condition. Buckets are
// sorted by score descending, ties kept in catalog order.
type Classification struct {
	Safe    []RankedFood `json:"safe"`
	Caution []RankedFood `json:"caution"`
	Avoid   []RankedFood `json:"avoid"`
}

// Recommendation holds the top safe picks for one condition plus summary
// counts over the whole catalog. The four totals are mutually exclusive and
// sum to the catalog size.
type Recommendation struct {
	Foods        []RankedFood `json:"safe_foods"`
	Count        int          `json:"count"`
	TotalSafe    int          `json:"all_safe"`
	TotalCaution int          `json:"total_caution"`
	TotalAvoid   int          `json:"total_avoid"`
	TotalUnknown int          `json:"total_unknown"`
}

// PlanFood is one food selected into a meal slot.
type PlanFood struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Score    int     `json:"safety_score"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
}

// MealSlot is one meal of a generated plan. A slot with no eligible foods
// still appears with an empty food list and a zero total.
type MealSlot struct {
	MealType      string     `json:"meal_type"`
	Foods         []PlanFood `json:"foods"`
	TotalCalories float64    `json:"total_calories"`
}

// ComparedFood is one side of a nutrition comparison.
type ComparedFood struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Nutrients Nutrients `json:"nutrition"`
}

// FoodComparison reports both nutrient bundles and their field-wise
// difference (second food minus first).
type FoodComparison struct {
	Foods       [2]ComparedFood    `json:"foods"`
	Differences map[string]float64 `json:"differences"`
}
