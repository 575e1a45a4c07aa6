package ticket

import (
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/timeparse"
)

// Ticket represents a unit of content-production work moving through the
// delivery pipeline. Rows are written by the production workflow; this
// service only reads them.
type Ticket struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Status     Status          `json:"status"`
	ClientName string          `json:"client_name"`
	Type       string          `json:"type,omitempty"`
	AssignedTo string          `json:"assigned_to,omitempty"`
	CreatedAt  timeparse.Stored `json:"created_at"`
	UpdatedAt  timeparse.Stored `json:"updated_at"`
	Timeline   Timeline        `json:"timeline"`
}

// Timeline tracks when a ticket entered each status and how long it has spent
// in each across all visits. Values were written by several client versions
// over the years, hence the timeparse.Stored entries.
type Timeline struct {
	StateHistory   map[Status]timeparse.Stored `json:"state_history,omitempty"`
	StateDurations map[Status]float64          `json:"state_durations,omitempty"`
}

// Status is a stage in the content pipeline.
type Status string

const (
	StatusTodo           Status = "todo"
	StatusInProgress     Status = "in_progress"
	StatusInternalReview Status = "internal_review"
	StatusClientReview   Status = "client_review"
	StatusDone           Status = "done"
	StatusInvoiced       Status = "invoiced"
	StatusPaid           Status = "paid"
)

// AllStatuses lists the pipeline stages in order.
func AllStatuses() []Status {
	return []Status{
		StatusTodo,
		StatusInProgress,
		StatusInternalReview,
		StatusClientReview,
		StatusDone,
		StatusInvoiced,
		StatusPaid,
	}
}

// IsValid reports whether s is a known pipeline stage.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusInternalReview, StatusClientReview,
		StatusDone, StatusInvoiced, StatusPaid:
		return true
	}
	return false
}

// IsTerminal reports whether s counts as complete. Terminal tickets are
// excluded from age and stuck-duration alerting.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDone, StatusInvoiced, StatusPaid:
		return true
	}
	return false
}

// ActiveStatuses are the in-flight stages counted toward a writer's load.
func ActiveStatuses() []Status {
	return []Status{StatusInProgress, StatusInternalReview, StatusClientReview}
}

// ActivityField selects which ticket date a recency query keys on.
type ActivityField string

const (
	ActivityCreated ActivityField = "created_at"
	ActivityUpdated ActivityField = "updated_at"
)

// Filter contains ticket query options. Zero values mean "no constraint".
type Filter struct {
	Status     Status
	ClientName string
	Type       string
	AssignedTo string
}
