package profile

import (
	"time"

	"github.com/google/uuid"
)

// Severity grades a diagnosed condition.
type Severity string

const (
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

// ConditionAssignment links a profile to one health condition from the rule
// table.
type ConditionAssignment struct {
	Condition   string     `json:"condition"`
	Severity    Severity   `json:"severity"`
	DiagnosedOn *time.Time `json:"diagnosed_on,omitempty"`
}

// Profile is a diner with declared health conditions. It carries no
// credentials; authentication is out of scope.
type Profile struct {
	ID         uuid.UUID             `json:"id" db:"profile_id"`
	Username   string                `json:"username" db:"username"`
	FirstName  string                `json:"first_name" db:"first_name"`
	LastName   string                `json:"last_name" db:"last_name"`
	Conditions []ConditionAssignment `json:"conditions"`
	CreatedAt  time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at" db:"updated_at"`
}

// ConditionCodes returns the condition identifiers in assignment order.
func (p *Profile) ConditionCodes() []string {
	codes := make([]string, 0, len(p.Conditions))
	for _, c := range p.Conditions {
		codes = append(codes, c.Condition)
	}
	return codes
}
