package dto

import (
	"time"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
)

// CreateRuleRequest is the payload for creating an alert rule.
type CreateRuleRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Type        string          `json:"type" validate:"required"`
	Enabled     *bool           `json:"enabled"`
	Conditions  rule.Conditions `json:"conditions"`
}

// UpdateRuleRequest is the payload for replacing an alert rule.
type UpdateRuleRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Type        string          `json:"type" validate:"required"`
	Enabled     *bool           `json:"enabled"`
	Conditions  rule.Conditions `json:"conditions"`
}

// SetEnabledRequest toggles a rule.
type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// TestRuleRequest evaluates an unsaved rule definition.
type TestRuleRequest struct {
	Type       string          `json:"type" validate:"required"`
	Conditions rule.Conditions `json:"conditions"`
}

// RuleDTO is the API representation of a stored rule.
type RuleDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Type        string          `json:"type"`
	Enabled     bool            `json:"enabled"`
	Conditions  rule.Conditions `json:"conditions"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FromRule maps a domain rule to its DTO.
func FromRule(r *rule.Rule) RuleDTO {
	return RuleDTO{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Type:        string(r.Type),
		Enabled:     r.Enabled,
		Conditions:  r.Conditions,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
