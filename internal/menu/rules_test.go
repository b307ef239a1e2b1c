package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRulesAreValid(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())
}

func TestDefaultRulesCoverAllConditions(t *testing.T) {
	rules := DefaultRules()
	want := []string{"diabetes", "celiac", "hypertension", "kidney", "lactose", "gout", "ibs"}
	got := make([]string, 0, rules.Len())
	for _, rule := range rules.Conditions() {
		got = append(got, rule.ID)
	}
	assert.Equal(t, want, got)
}

// The check order is part of the contract: it decides which violation is
// reported as the primary reason.
func TestDiabetesCheckOrder(t *testing.T) {
	rule, ok := DefaultRules().Get("diabetes")
	require.True(t, ok)
	require.Len(t, rule.Checks, 4)
	assert.Equal(t, NutrientSugar, rule.Checks[0].Nutrient)
	assert.Equal(t, NutrientCarbs, rule.Checks[1].Nutrient)
	assert.Equal(t, NutrientFiber, rule.Checks[2].Nutrient)
	assert.Equal(t, NutrientCalories, rule.Checks[3].Nutrient)
	assert.Equal(t, []int{15, 20, 10, 5}, []int{
		rule.Checks[0].Penalty, rule.Checks[1].Penalty,
		rule.Checks[2].Penalty, rule.Checks[3].Penalty,
	})
}

func TestRuleSetValidateAccumulatesDefects(t *testing.T) {
	broken := NewRuleSet(
		ConditionRule{ID: "empty"},
		ConditionRule{
			ID: "bad",
			Checks: []Check{
				{Kind: CheckMaxNutrient, Penalty: 0},
				{Kind: CheckPurineAllowed, Penalty: 10},
			},
		},
	)
	err := broken.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no checks defined")
	assert.Contains(t, err.Error(), "penalty must be positive")
	assert.Contains(t, err.Error(), "nutrient required")
	assert.Contains(t, err.Error(), "empty purine allow-list")
}

func TestCheckMessages(t *testing.T) {
	food := FoodItem{
		ID:              "sample",
		Nutrients:       Nutrients{SodiumMg: 850, FiberG: 0.3, Calories: 450},
		ContainsLactose: true,
		PurineLevel:     PurineVeryHigh,
	}

	tests := []struct {
		name  string
		check Check
		want  string
	}{
		{
			name:  "sodium keeps mg unit",
			check: Check{Kind: CheckMaxNutrient, Nutrient: NutrientSodium, Limit: 800, Penalty: 10},
			want:  "High sodium: 850mg (max 800mg)",
		},
		{
			name:  "calories are unitless",
			check: Check{Kind: CheckMaxNutrient, Nutrient: NutrientCalories, Limit: 400, Penalty: 5},
			want:  "High calories: 450 (max 400)",
		},
		{
			name:  "fiber minimum keeps fractions",
			check: Check{Kind: CheckMinNutrient, Nutrient: NutrientFiber, Limit: 2, Penalty: 10},
			want:  "Low fiber: 0.3g (min 2g)",
		},
		{
			name:  "lactose flag",
			check: Check{Kind: CheckNoLactose, Penalty: 50},
			want:  "Contains lactose",
		},
		{
			name:  "purine names the level",
			check: Check{Kind: CheckPurineAllowed, Allowed: []PurineLevel{PurineLow, PurineMedium}, Penalty: 30},
			want:  "High purine level: very_high",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, violated := tt.check.evaluate(food)
			require.True(t, violated)
			assert.Equal(t, tt.want, msg)
		})
	}
}

func TestCheckPassesWithinLimits(t *testing.T) {
	food := FoodItem{ID: "plain", Nutrients: Nutrients{SodiumMg: 100, FiberG: 6}, PurineLevel: PurineLow}
	checks := []Check{
		{Kind: CheckMaxNutrient, Nutrient: NutrientSodium, Limit: 800, Penalty: 10},
		{Kind: CheckMinNutrient, Nutrient: NutrientFiber, Limit: 5, Penalty: 10},
		{Kind: CheckNoGluten, Penalty: 50},
		{Kind: CheckNoLactose, Penalty: 50},
		{Kind: CheckPurineAllowed, Allowed: []PurineLevel{PurineLow, PurineMedium}, Penalty: 30},
	}
	for _, c := range checks {
		msg, violated := c.evaluate(food)
		assert.False(t, violated)
		assert.Empty(t, msg)
	}
}
