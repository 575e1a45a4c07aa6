package dto

import (
	"time"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/alert"
)

// AlertDTO is the API representation of a fired alert.
type AlertDTO struct {
	ID        string    `json:"id"`
	RuleID    string    `json:"rule_id"`
	RuleName  string    `json:"rule_name"`
	RuleType  string    `json:"rule_type"`
	EntityKey string    `json:"entity_key"`
	Details   string    `json:"details"`
	Metric    int       `json:"metric"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// UpdateAlertStatusRequest moves an alert between statuses.
type UpdateAlertStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// FromAlert maps a domain alert to its DTO.
func FromAlert(a *alert.Alert) AlertDTO {
	return AlertDTO{
		ID:        a.ID,
		RuleID:    a.RuleID,
		RuleName:  a.RuleName,
		RuleType:  string(a.RuleType),
		EntityKey: a.EntityKey,
		Details:   a.Details,
		Metric:    a.Metric,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
