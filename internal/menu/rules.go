package menu

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
)

// Nutrient identifies one field of the nutrient bundle.
type Nutrient string

const (
	NutrientCalories Nutrient = "calories"
	NutrientSodium   Nutrient = "sodium_mg"
	NutrientSugar    Nutrient = "sugar_g"
	NutrientProtein  Nutrient = "protein_g"
	NutrientFiber    Nutrient = "fiber_g"
	NutrientFat      Nutrient = "fat_g"
	NutrientCarbs    Nutrient = "carbs_g"
)

// Value returns the bundle field named by n, or 0 for an unknown nutrient.
func (b Nutrients) Value(n Nutrient) float64 {
	switch n {
	case NutrientCalories:
		return b.Calories
	case NutrientSodium:
		return b.SodiumMg
	case NutrientSugar:
		return b.SugarG
	case NutrientProtein:
		return b.ProteinG
	case NutrientFiber:
		return b.FiberG
	case NutrientFat:
		return b.FatG
	case NutrientCarbs:
		return b.CarbsG
	}
	return 0
}

// CheckKind tags the predicate variants a rule may use.
type CheckKind int

const (
	// CheckMaxNutrient violates when the nutrient exceeds Limit.
	CheckMaxNutrient CheckKind = iota
	// CheckMinNutrient violates when the nutrient falls below Limit.
	CheckMinNutrient
	// CheckNoGluten violates when the food contains gluten.
	CheckNoGluten
	// CheckNoLactose violates when the food contains lactose.
	CheckNoLactose
	// CheckPurineAllowed violates when the purine level is not in Allowed.
	CheckPurineAllowed
)

// Check is one threshold predicate with its violation penalty. Checks run in
// slice order: the order decides which violation becomes the verdict's
// primary reason, while the final score is order-independent because
// penalties are additive.
type Check struct {
	Kind     CheckKind
	Nutrient Nutrient
	Limit    float64
	Allowed  []PurineLevel
	Penalty  int
}

// evaluate reports whether the food violates the check, with a formatted
// violation message naming the offending value and the threshold.
func (c Check) evaluate(f FoodItem) (string, bool) {
	switch c.Kind {
	case CheckMaxNutrient:
		if v := f.Nutrients.Value(c.Nutrient); v > c.Limit {
			return fmt.Sprintf("High %s: %s (max %s)",
				nutrientLabel(c.Nutrient), formatAmount(v, c.Nutrient), formatAmount(c.Limit, c.Nutrient)), true
		}
	case CheckMinNutrient:
		if v := f.Nutrients.Value(c.Nutrient); v < c.Limit {
			return fmt.Sprintf("Low %s: %s (min %s)",
				nutrientLabel(c.Nutrient), formatAmount(v, c.Nutrient), formatAmount(c.Limit, c.Nutrient)), true
		}
	case CheckNoGluten:
		if f.ContainsGluten {
			return "Contains gluten", true
		}
	case CheckNoLactose:
		if f.ContainsLactose {
			return "Contains lactose", true
		}
	case CheckPurineAllowed:
		for _, lvl := range c.Allowed {
			if f.PurineLevel == lvl {
				return "", false
			}
		}
		return fmt.Sprintf("High purine level: %s", f.PurineLevel), true
	}
	return "", false
}

func nutrientLabel(n Nutrient) string {
	switch n {
	case NutrientCalories:
		return "calories"
	case NutrientSodium:
		return "sodium"
	case NutrientSugar:
		return "sugar"
	case NutrientProtein:
		return "protein"
	case NutrientFiber:
		return "fiber"
	case NutrientFat:
		return "fat"
	case NutrientCarbs:
		return "carbs"
	}
	return string(n)
}

// formatAmount renders a nutrient amount with its unit: mg for sodium,
// unitless for calories, grams otherwise. Whole numbers print without a
// decimal point.
func formatAmount(v float64, n Nutrient) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	switch n {
	case NutrientCalories:
		return s
	case NutrientSodium:
		return s + "mg"
	default:
		return s + "g"
	}
}

// ConditionRule is the static rule set for one health condition.
type ConditionRule struct {
	ID             string   `json:"code"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Considerations []string `json:"considerations"`
	Checks         []Check  `json:"-"`
}

// RuleSet is an immutable condition-rule table keyed by condition identifier,
// preserving a listing order for presentation.
type RuleSet struct {
	order []string
	rules map[string]ConditionRule
}

// NewRuleSet builds a rule set from rules in listing order. A duplicated
// identifier replaces the earlier rule in place.
func NewRuleSet(rules ...ConditionRule) RuleSet {
	rs := RuleSet{rules: make(map[string]ConditionRule, len(rules))}
	for _, r := range rules {
		if _, exists := rs.rules[r.ID]; !exists {
			rs.order = append(rs.order, r.ID)
		}
		rs.rules[r.ID] = r
	}
	return rs
}

// Get returns the rule for a condition identifier.
func (rs RuleSet) Get(id string) (ConditionRule, bool) {
	r, ok := rs.rules[id]
	return r, ok
}

// Conditions lists all rules in listing order.
func (rs RuleSet) Conditions() []ConditionRule {
	out := make([]ConditionRule, 0, len(rs.order))
	for _, id := range rs.order {
		out = append(out, rs.rules[id])
	}
	return out
}

// Len returns the number of conditions in the set.
func (rs RuleSet) Len() int { return len(rs.rules) }

// Validate checks the whole table and accumulates every defect rather than
// stopping at the first, so a broken deployment names all its problems.
func (rs RuleSet) Validate() error {
	var result *multierror.Error
	for _, id := range rs.order {
		rule := rs.rules[id]
		if rule.ID == "" {
			result = multierror.Append(result, fmt.Errorf("rule %q: empty condition identifier", rule.Name))
		}
		if len(rule.Checks) == 0 {
			result = multierror.Append(result, fmt.Errorf("condition %q: no checks defined", id))
		}
		for i, c := range rule.Checks {
			if c.Penalty <= 0 {
				result = multierror.Append(result, fmt.Errorf("condition %q check %d: penalty must be positive", id, i))
			}
			switch c.Kind {
			case CheckMaxNutrient, CheckMinNutrient:
				if c.Nutrient == "" {
					result = multierror.Append(result, fmt.Errorf("condition %q check %d: nutrient required", id, i))
				}
				if c.Limit < 0 {
					result = multierror.Append(result, fmt.Errorf("condition %q check %d: negative limit", id, i))
				}
			case CheckPurineAllowed:
				if len(c.Allowed) == 0 {
					result = multierror.Append(result, fmt.Errorf("condition %q check %d: empty purine allow-list", id, i))
				}
			}
		}
	}
	return result.ErrorOrNil()
}

// DefaultRules returns the built-in condition rule table. Thresholds and
// penalties are fixed, empirically tuned configuration and must be preserved
// as-is; adding a condition means adding a rule here, not new branching code.
func DefaultRules() RuleSet {
	return NewRuleSet(
		ConditionRule{
			ID:             "diabetes",
			Name:           "Diabetes",
			Description:    "Limits sugar and refined carbohydrates, favors fiber",
			Considerations: []string{"high fiber", "low sugar", "lean protein"},
			Checks: []Check{
				{Kind: CheckMaxNutrient, Nutrient: NutrientSugar, Limit: 15, Penalty: 15},
				{Kind: CheckMaxNutrient, Nutrient: NutrientCarbs, Limit: 50, Penalty: 20},
				{Kind: CheckMinNutrient, Nutrient: NutrientFiber, Limit: 2, Penalty: 10},
				{Kind: CheckMaxNutrient, Nutrient: NutrientCalories, Limit: 400, Penalty: 5},
			},
		},
		ConditionRule{
			ID:             "celiac",
			Name:           "Celiac Disease",
			Description:    "Excludes gluten entirely, moderates sodium",
			Considerations: []string{"gluten-free", "naturally processed"},
			Checks: []Check{
				{Kind: CheckNoGluten, Penalty: 50},
				{Kind: CheckMaxNutrient, Nutrient: NutrientSodium, Limit: 800, Penalty: 10},
				{Kind: CheckMinNutrient, Nutrient: NutrientFiber, Limit: 3, Penalty: 5},
			},
		},
		ConditionRule{
			ID:             "hypertension",
			Name:           "Hypertension",
			Description:    "Restricts sodium, calories and fat",
			Considerations: []string{"low sodium", "high potassium", "lean protein"},
			Checks: []Check{
				{Kind: CheckMaxNutrient, Nutrient: NutrientSodium, Limit: 600, Penalty: 25},
				{Kind: CheckMaxNutrient, Nutrient: NutrientCalories, Limit: 350, Penalty: 10},
				{Kind: CheckMaxNutrient, Nutrient: NutrientFat, Limit: 15, Penalty: 15},
			},
		},
		ConditionRule{
			ID:             "kidney",
			Name:           "Kidney Disease",
			Description:    "Restricts sodium and keeps protein moderate",
			Considerations: []string{"low sodium", "moderate protein", "kidney-friendly"},
			Checks: []Check{
				{Kind: CheckMaxNutrient, Nutrient: NutrientSodium, Limit: 400, Penalty: 25},
				{Kind: CheckMaxNutrient, Nutrient: NutrientProtein, Limit: 25, Penalty: 20},
			},
		},
		ConditionRule{
			ID:             "lactose",
			Name:           "Lactose Intolerance",
			Description:    "Excludes lactose-containing foods",
			Considerations: []string{"lactose-free", "dairy-free alternatives"},
			Checks: []Check{
				{Kind: CheckNoLactose, Penalty: 50},
			},
		},
		ConditionRule{
			ID:             "gout",
			Name:           "Gout",
			Description:    "Avoids purine-rich foods and excess sodium",
			Considerations: []string{"low purine", "avoid organ meats", "lean protein"},
			Checks: []Check{
				{Kind: CheckPurineAllowed, Allowed: []PurineLevel{PurineLow, PurineMedium}, Penalty: 30},
				{Kind: CheckMaxNutrient, Nutrient: NutrientSodium, Limit: 700, Penalty: 10},
			},
		},
		ConditionRule{
			ID:             "ibs",
			Name:           "Irritable Bowel Syndrome",
			Description:    "Favors fiber and keeps fat low",
			Considerations: []string{"high fiber", "low fat", "easy to digest"},
			Checks: []Check{
				{Kind: CheckMinNutrient, Nutrient: NutrientFiber, Limit: 5, Penalty: 10},
				{Kind: CheckMaxNutrient, Nutrient: NutrientFat, Limit: 10, Penalty: 20},
			},
		},
	)
}
