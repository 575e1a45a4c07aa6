package rule

import "context"

// Repository defines the interface for rule data access.
type Repository interface {
	// Create stores a new rule.
	Create(ctx context.Context, r *Rule) error

	// GetByID retrieves a rule by ID.
	GetByID(ctx context.Context, id string) (*Rule, error)

	// Update replaces a stored rule.
	Update(ctx context.Context, r *Rule) error

	// Delete removes a rule.
	Delete(ctx context.Context, id string) error

	// SetEnabled toggles a rule's enabled flag.
	SetEnabled(ctx context.Context, id string, enabled bool) error

	// List retrieves rules matching the filter.
	List(ctx context.Context, filter Filter) ([]*Rule, error)

	// ListEnabled retrieves all enabled rules.
	ListEnabled(ctx context.Context) ([]*Rule, error)
}
