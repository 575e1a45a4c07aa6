package alert

import "context"

// Repository defines the interface for alert data access.
type Repository interface {
	// Create stores a new alert.
	Create(ctx context.Context, a *Alert) error

	// GetByID retrieves an alert by ID.
	GetByID(ctx context.Context, id string) (*Alert, error)

	// Update replaces a stored alert.
	Update(ctx context.Context, a *Alert) error

	// Delete removes an alert.
	Delete(ctx context.Context, id string) error

	// ListWithPagination retrieves alerts with filters and pagination.
	ListWithPagination(ctx context.Context, filter Filter, limit, offset int) ([]*Alert, int64, error)

	// HasOpen reports whether an open alert already exists for a rule/entity
	// pair.
	HasOpen(ctx context.Context, ruleID, entityKey string) (bool, error)

	// CountByStatus counts alerts by status.
	CountByStatus(ctx context.Context) (map[string]int, error)
}
