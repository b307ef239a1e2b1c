package menu

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Service exposes the menu operations to the transport layer. It owns the
// live catalog snapshot; Reload builds a fresh snapshot and swaps it in
// atomically, so concurrent calls always compute over a consistent catalog.
type Service interface {
	Validate(foodID, condition string) Verdict
	Classify(conditions []string) map[string]Classification
	Recommend(conditions []string, maxItems int) (map[string]Recommendation, error)
	BuildMealPlan(conditions []string, mealCount int) ([]MealSlot, error)
	FilterByExcludedAllergens(excluded []string) []FoodItem
	Compare(firstID, secondID string) (*FoodComparison, error)
	Foods(search, category string) []FoodItem
	FoodInfo(id string) (FoodItem, error)
	Categories() []string
	Conditions() []ConditionRule
	Reload(ctx context.Context) error
}

type service struct {
	repo    Repository
	rules   RuleSet
	logger  zerolog.Logger
	catalog atomic.Pointer[Catalog]
}

// NewService builds a menu service over the given repository and rule table.
// Until the first successful Reload (or when repo is nil) it serves the
// built-in seed catalog.
func NewService(repo Repository, rules RuleSet, logger zerolog.Logger) Service {
	s := &service{
		repo:   repo,
		rules:  rules,
		logger: logger.With().Str("service", "menu").Logger(),
	}
	s.catalog.Store(SeedCatalog())
	return s
}

// engine captures the current snapshot; the returned engine keeps computing
// over it even if a reload swaps the live catalog mid-call.
func (s *service) engine() *Engine {
	return NewEngine(s.catalog.Load(), s.rules)
}

func (s *service) Reload(ctx context.Context) error {
	if s.repo == nil {
		return fmt.Errorf("no catalog repository configured")
	}
	catalog, err := s.repo.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	s.catalog.Store(catalog)
	s.logger.Info().Int("foods", catalog.Len()).Msg("catalog reloaded")
	return nil
}

func (s *service) Validate(foodID, condition string) Verdict {
	return s.engine().Validate(foodID, condition)
}

func (s *service) Classify(conditions []string) map[string]Classification {
	return s.engine().Classify(conditions)
}

func (s *service) Recommend(conditions []string, maxItems int) (map[string]Recommendation, error) {
	return s.engine().Recommend(conditions, maxItems)
}

func (s *service) BuildMealPlan(conditions []string, mealCount int) ([]MealSlot, error) {
	return s.engine().BuildMealPlan(conditions, mealCount)
}

func (s *service) FilterByExcludedAllergens(excluded []string) []FoodItem {
	return s.engine().FilterByExcludedAllergens(excluded)
}

func (s *service) Compare(firstID, secondID string) (*FoodComparison, error) {
	return s.engine().Compare(firstID, secondID)
}

// Foods lists the catalog, optionally narrowed by a case-insensitive name or
// description substring and an exact (case-insensitive) category.
func (s *service) Foods(search, category string) []FoodItem {
	catalog := s.catalog.Load()
	needle := strings.ToLower(strings.TrimSpace(search))
	out := []FoodItem{}
	for _, food := range catalog.Foods() {
		if category != "" && !strings.EqualFold(food.Category, category) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(food.Name), needle) &&
			!strings.Contains(strings.ToLower(food.Description), needle) {
			continue
		}
		out = append(out, food)
	}
	return out
}

func (s *service) FoodInfo(id string) (FoodItem, error) {
	food, ok := s.catalog.Load().Get(id)
	if !ok {
		return FoodItem{}, fmt.Errorf("food %q: %w", id, ErrNotFound)
	}
	return food, nil
}

// Categories lists the distinct food categories in catalog order.
func (s *service) Categories() []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, food := range s.catalog.Load().Foods() {
		if _, ok := seen[food.Category]; ok {
			continue
		}
		seen[food.Category] = struct{}{}
		out = append(out, food.Category)
	}
	return out
}

func (s *service) Conditions() []ConditionRule {
	return s.rules.Conditions()
}
