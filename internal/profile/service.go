package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"food-menu-api/internal/menu"
)

// Menu provides the recommendation operations the profile service composes.
// Declared here to decouple from the menu service implementation.
type Menu interface {
	Recommend(conditions []string, maxItems int) (map[string]menu.Recommendation, error)
	BuildMealPlan(conditions []string, mealCount int) ([]menu.MealSlot, error)
	Conditions() []menu.ConditionRule
}

// Reporter delivers a rendered recommendation report for a profile.
type Reporter interface {
	SendDietitianReport(ctx context.Context, p Profile, recs map[string]menu.Recommendation) error
}

type Service interface {
	Create(ctx context.Context, username, firstName, lastName string) (*Profile, error)
	Get(ctx context.Context, id uuid.UUID) (*Profile, error)
	AddCondition(ctx context.Context, id uuid.UUID, c ConditionAssignment) (*Profile, error)
	Recommendations(ctx context.Context, id uuid.UUID, maxItems int) (map[string]menu.Recommendation, error)
	MealPlan(ctx context.Context, id uuid.UUID, mealCount int) ([]menu.MealSlot, error)
	SendReport(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	menuSvc  Menu
	reporter Reporter
	logger   zerolog.Logger
}

// NewService wires the profile service. reporter may be nil when report
// delivery is not configured.
func NewService(repo Repository, menuSvc Menu, reporter Reporter, logger zerolog.Logger) Service {
	return &service{
		repo:     repo,
		menuSvc:  menuSvc,
		reporter: reporter,
		logger:   logger.With().Str("service", "profile").Logger(),
	}
}

func (s *service) Create(ctx context.Context, username, firstName, lastName string) (*Profile, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("profile storage unavailable")
	}
	if username == "" {
		return nil, fmt.Errorf("%w: username required", menu.ErrInvalidInput)
	}
	p := &Profile{
		ID:        uuid.New(),
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	s.logger.Info().Str("profile_id", p.ID.String()).Str("username", username).Msg("profile created")
	return p, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Profile, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("profile storage unavailable")
	}
	return s.repo.GetByID(ctx, id)
}

// AddCondition attaches a health condition to a profile. The condition must
// exist in the rule table; severity defaults to Moderate.
func (s *service) AddCondition(ctx context.Context, id uuid.UUID, c ConditionAssignment) (*Profile, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("profile storage unavailable")
	}
	if !s.knownCondition(c.Condition) {
		return nil, fmt.Errorf("condition %q: %w", c.Condition, menu.ErrNotFound)
	}
	if c.Severity == "" {
		c.Severity = SeverityModerate
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.AddCondition(ctx, id, c); err != nil {
		return nil, fmt.Errorf("add condition: %w", err)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Recommendations(ctx context.Context, id uuid.UUID, maxItems int) (map[string]menu.Recommendation, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(p.Conditions) == 0 {
		return nil, fmt.Errorf("%w: profile has no health conditions", menu.ErrInvalidInput)
	}
	return s.menuSvc.Recommend(p.ConditionCodes(), maxItems)
}

func (s *service) MealPlan(ctx context.Context, id uuid.UUID, mealCount int) ([]menu.MealSlot, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(p.Conditions) == 0 {
		return nil, fmt.Errorf("%w: profile has no health conditions", menu.ErrInvalidInput)
	}
	return s.menuSvc.BuildMealPlan(p.ConditionCodes(), mealCount)
}

// SendReport renders the profile's current recommendations and hands them to
// the configured reporter.
func (s *service) SendReport(ctx context.Context, id uuid.UUID) error {
	if s.reporter == nil {
		return fmt.Errorf("report delivery not configured")
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if len(p.Conditions) == 0 {
		return fmt.Errorf("%w: profile has no health conditions", menu.ErrInvalidInput)
	}
	recs, err := s.menuSvc.Recommend(p.ConditionCodes(), 5)
	if err != nil {
		return err
	}
	if err := s.reporter.SendDietitianReport(ctx, *p, recs); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	s.logger.Info().Str("profile_id", id.String()).Msg("dietitian report sent")
	return nil
}

func (s *service) knownCondition(code string) bool {
	for _, rule := range s.menuSvc.Conditions() {
		if rule.ID == code {
			return true
		}
	}
	return false
}
