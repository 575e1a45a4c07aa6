package alert

import (
	"time"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
)

// Alert is a fired alert record created by the scheduled rule scanner when a
// rule matches an entity. Rule previews never create alerts.
type Alert struct {
	ID        string    `json:"id"`
	RuleID    string    `json:"rule_id"`
	RuleName  string    `json:"rule_name"`
	RuleType  rule.Type `json:"rule_type"`
	EntityKey string    `json:"entity_key"`
	Details   string    `json:"details"`
	Metric    int       `json:"metric"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Alert status
const (
	StatusOpen         = "open"
	StatusAcknowledged = "acknowledged"
	StatusResolved     = "resolved"
)

// Filter contains alert filtering options.
type Filter struct {
	RuleID   string
	RuleType rule.Type
	Status   string
}
