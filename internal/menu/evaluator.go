package menu

// Engine runs the recommendation core over one immutable catalog snapshot
// and rule table. Every operation is a pure computation over those inputs,
// so an Engine is safe for concurrent use.
type Engine struct {
	catalog *Catalog
	rules   RuleSet
}

// NewEngine builds an engine over a catalog snapshot and rule table.
func NewEngine(catalog *Catalog, rules RuleSet) *Engine {
	return &Engine{catalog: catalog, rules: rules}
}

const reasonMeetsRequirements = "Meets dietary requirements"

// Validate scores one food against one condition. An unknown food or
// condition identifier yields an unknown verdict with score 0 naming the
// failed lookup; Validate never returns an error.
func (e *Engine) Validate(foodID, condition string) Verdict {
	food, ok := e.catalog.Get(foodID)
	if !ok {
		return Verdict{Status: StatusUnknown, Reason: "Food not found"}
	}
	rule, ok := e.rules.Get(condition)
	if !ok {
		return Verdict{Status: StatusUnknown, Reason: "Condition not found"}
	}
	return evaluate(food, rule)
}

// evaluate applies the condition's checks in their fixed order. The score
// starts at 100, each violation subtracts the check's penalty, and the
// result is clamped at 0 before the status is derived.
func evaluate(food FoodItem, rule ConditionRule) Verdict {
	score := 100
	var violations []string
	for _, check := range rule.Checks {
		if msg, violated := check.evaluate(food); violated {
			violations = append(violations, msg)
			score -= check.Penalty
		}
	}
	if score < 0 {
		score = 0
	}
	reason := reasonMeetsRequirements
	if len(violations) > 0 {
		reason = violations[0]
	}
	return Verdict{
		Status:     statusForScore(score),
		Score:      score,
		Violations: violations,
		Reason:     reason,
	}
}

// statusForScore maps a clamped score onto the status partition:
// 80 and above is safe, 50-79 caution, below 50 avoid.
func statusForScore(score int) Status {
	switch {
	case score >= 80:
		return StatusSafe
	case score >= 50:
		return StatusCaution
	default:
		return StatusAvoid
	}
}
