package alert

import "context"

// Service defines the interface for alert business logic.
type Service interface {
	// Record stores a fired alert unless an open alert already exists for the
	// same rule/entity pair. Returns the stored alert, or nil when suppressed.
	Record(ctx context.Context, a *Alert) (*Alert, error)

	// GetByID retrieves an alert by ID.
	GetByID(ctx context.Context, id string) (*Alert, error)

	// UpdateStatus moves an alert between open/acknowledged/resolved.
	UpdateStatus(ctx context.Context, id string, status string) error

	// Delete removes an alert.
	Delete(ctx context.Context, id string) error

	// List retrieves alerts with filters and pagination.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Alert, int64, error)

	// GetSummary gets alert counts by status.
	GetSummary(ctx context.Context) (map[string]int, error)
}
