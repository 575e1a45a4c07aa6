package client

import "time"

// Rule is an alert rule as returned by the API.
type Rule struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type"`
	Enabled     bool       `json:"enabled"`
	Conditions  Conditions `json:"conditions"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Conditions mirrors the rule conditions union. Exactly one arm is set.
type Conditions struct {
	Ticket *TicketConditions `json:"ticket,omitempty"`
	Writer *WriterConditions `json:"writer,omitempty"`
	Client *ClientConditions `json:"client,omitempty"`
}

// TicketConditions configures a ticket-based rule.
type TicketConditions struct {
	CheckType   string   `json:"check_type,omitempty"`
	Statuses    []string `json:"statuses"`
	DaysInState int      `json:"days_in_state"`
	ClientName  string   `json:"client_name,omitempty"`
	TicketType  string   `json:"ticket_type,omitempty"`
}

// WriterConditions configures a writer-based rule.
type WriterConditions struct {
	AlertType     string `json:"alert_type"`
	ThresholdDays int    `json:"threshold_days,omitempty"`
	MaxTasks      int    `json:"max_tasks,omitempty"`
	WriterName    string `json:"writer_name,omitempty"`
}

// ClientConditions configures a client-based rule.
type ClientConditions struct {
	AlertType     string `json:"alert_type"`
	ThresholdDays int    `json:"threshold_days"`
	ClientName    string `json:"client_name,omitempty"`
}

// TestResult is the outcome of evaluating a rule.
type TestResult struct {
	RuleType    string        `json:"rule_type"`
	EvaluatedAt time.Time     `json:"evaluated_at"`
	Tickets     []TicketMatch `json:"tickets,omitempty"`
	Writers     []WriterMatch `json:"writers,omitempty"`
	Clients     []ClientMatch `json:"clients,omitempty"`
}

// MatchCount returns the total number of flagged entities.
func (r *TestResult) MatchCount() int {
	return len(r.Tickets) + len(r.Writers) + len(r.Clients)
}

// TicketMatch is a ticket flagged by a ticket-based rule.
type TicketMatch struct {
	TicketID   string `json:"ticket_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	ClientName string `json:"client_name"`
	Type       string `json:"type,omitempty"`
	AssignedTo string `json:"assigned_to,omitempty"`
	Days       int    `json:"days"`
	CheckType  string `json:"check_type"`
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

// Alert is a fired alert as returned by the API.
type Alert struct {
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

// Ticket is a work item as returned by the API.
type Ticket struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	ClientName string `json:"client_name"`
	Type       string `json:"type,omitempty"`
	AssignedTo string `json:"assigned_to,omitempty"`
}

// ListOptions contains common pagination options.
type ListOptions struct {
	Page     int
	PageSize int
}

// Page wraps a paginated list response.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}
