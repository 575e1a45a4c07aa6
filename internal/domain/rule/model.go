package rule

import (
	"fmt"
	"time"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/ticket"
)

// Rule is a persisted, user-authored condition set evaluated on demand to
// produce a preview list of matching entities, and periodically by the
// scanner to fire alerts.
type Rule struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Type        Type       `json:"type"`
	Enabled     bool       `json:"enabled"`
	Conditions  Conditions `json:"conditions"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Type selects which evaluator a rule is routed to.
type Type string

const (
	TypeTicketBased Type = "ticket-based"
	TypeWriterBased Type = "writer-based"
	TypeClientBased Type = "client-based"
)

// Conditions is a tagged union keyed on the rule type: exactly one arm is
// populated for a valid rule.
type Conditions struct {
	Ticket *TicketConditions `json:"ticket,omitempty"`
	Writer *WriterConditions `json:"writer,omitempty"`
	Client *ClientConditions `json:"client,omitempty"`
}

// CheckType selects how a ticket-based rule measures elapsed time.
type CheckType string

const (
	// CheckStatusDuration measures the current unbroken dwell time in a
	// status. The default.
	CheckStatusDuration CheckType = "status-duration"
	// CheckTicketAge measures days since the ticket was created, regardless
	// of status transitions.
	CheckTicketAge CheckType = "ticket-age"
)

// TicketConditions flags tickets that have been sitting too long.
type TicketConditions struct {
	CheckType   CheckType       `json:"check_type,omitempty"`
	Statuses    []ticket.Status `json:"statuses"`
	DaysInState int             `json:"days_in_state"`
	ClientName  string          `json:"client_name,omitempty"`
	TicketType  string          `json:"ticket_type,omitempty"`
}

// WriterAlertType selects the writer evaluation to run.
type WriterAlertType string

const (
	WriterNoTasksAssigned WriterAlertType = "no-tasks-assigned"
	WriterOverloaded      WriterAlertType = "overloaded"
	WriterInactive        WriterAlertType = "inactive"
)

// DefaultMaxTasks is the overload limit when a rule does not set one.
const DefaultMaxTasks = 5

// DefaultInactiveDays is the inactivity window when a rule does not set one.
const DefaultInactiveDays = 7

// WriterConditions flags writers by workload or inactivity.
type WriterConditions struct {
	AlertType     WriterAlertType `json:"alert_type"`
	ThresholdDays int             `json:"threshold_days,omitempty"`
	MaxTasks      int             `json:"max_tasks,omitempty"`
	WriterName    string          `json:"writer_name,omitempty"`
}

// ClientAlertType selects the client evaluation to run.
type ClientAlertType string

const (
	ClientNoRecentTickets ClientAlertType = "no-recent-tickets"
	ClientNoNewTickets    ClientAlertType = "no-new-tickets"
)

// ClientConditions flags clients with no qualifying recent activity.
type ClientConditions struct {
	AlertType     ClientAlertType `json:"alert_type"`
	ThresholdDays int             `json:"threshold_days"`
	ClientName    string          `json:"client_name,omitempty"`
}

// Validate checks that the rule type is known and the matching conditions arm
// is present and well formed.
func (r *Rule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("rule name is required")
	}
	switch r.Type {
	case TypeTicketBased:
		c := r.Conditions.Ticket
		if c == nil {
			return fmt.Errorf("ticket-based rule requires ticket conditions")
		}
		if c.DaysInState < 1 {
			return fmt.Errorf("days_in_state must be at least 1")
		}
		switch c.CheckType {
		case "", CheckStatusDuration, CheckTicketAge:
		default:
			return fmt.Errorf("unknown check_type: %s", c.CheckType)
		}
		for _, s := range c.Statuses {
			if !s.IsValid() {
				return fmt.Errorf("unknown status: %s", s)
			}
		}
		if c.CheckType != CheckTicketAge && len(c.Statuses) == 0 {
			return fmt.Errorf("status-duration rules require at least one status")
		}
	case TypeWriterBased:
		c := r.Conditions.Writer
		if c == nil {
			return fmt.Errorf("writer-based rule requires writer conditions")
		}
		switch c.AlertType {
		case WriterNoTasksAssigned, WriterOverloaded, WriterInactive:
		default:
			return fmt.Errorf("unknown writer alert_type: %s", c.AlertType)
		}
	case TypeClientBased:
		c := r.Conditions.Client
		if c == nil {
			return fmt.Errorf("client-based rule requires client conditions")
		}
		switch c.AlertType {
		case ClientNoRecentTickets, ClientNoNewTickets:
		default:
			return fmt.Errorf("unknown client alert_type: %s", c.AlertType)
		}
		if c.ThresholdDays < 1 {
			return fmt.Errorf("threshold_days must be at least 1")
		}
	default:
		return fmt.Errorf("unknown rule type: %s", r.Type)
	}
	return nil
}

// Filter contains rule listing options.
type Filter struct {
	Type    Type
	Enabled *bool
}

// TicketMatch is a ticket flagged by a ticket-based rule.
type TicketMatch struct {
	TicketID   string        `json:"ticket_id"`
	Title      string        `json:"title"`
	Status     ticket.Status `json:"status"`
	ClientName string        `json:"client_name"`
	Type       string        `json:"type,omitempty"`
	AssignedTo string        `json:"assigned_to,omitempty"`
	Days       int           `json:"days"`
	CheckType  CheckType     `json:"check_type"`
}

// WriterMatch is a writer flagged by a writer-based rule.
type WriterMatch struct {
	WriterID    string `json:"writer_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Issue       string `json:"issue"`
	TaskCount   int    `json:"task_count"`
}

// ClientMatch is a client flagged by a client-based rule.
type ClientMatch struct {
	ClientID          string `json:"client_id"`
	Name              string `json:"name"`
	Issue             string `json:"issue"`
	DaysSinceActivity int    `json:"days_since_activity"`
}

// TestResult is the outcome of evaluating a rule against current stored
// state. Only the slice matching the rule type is populated; an unknown rule
// type yields an empty result.
type TestResult struct {
	RuleType    Type          `json:"rule_type"`
	EvaluatedAt time.Time     `json:"evaluated_at"`
	Tickets     []TicketMatch `json:"tickets,omitempty"`
	Writers     []WriterMatch `json:"writers,omitempty"`
	Clients     []ClientMatch `json:"clients,omitempty"`
}

// MatchCount returns the total number of flagged entities.
func (r *TestResult) MatchCount() int {
	return len(r.Tickets) + len(r.Writers) + len(r.Clients)
}
