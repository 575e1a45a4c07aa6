package rule

import "context"

// Service defines the interface for rule business logic.
type Service interface {
	// Create validates and stores a new rule, returning its ID.
	Create(ctx context.Context, r *Rule) (string, error)

	// GetByID retrieves a rule by ID.
	GetByID(ctx context.Context, id string) (*Rule, error)

	// Update validates and replaces a stored rule.
	Update(ctx context.Context, r *Rule) error

	// Delete removes a rule.
	Delete(ctx context.Context, id string) error

	// SetEnabled toggles a rule's enabled flag.
	SetEnabled(ctx context.Context, id string, enabled bool) error

	// List retrieves rules matching the filter.
	List(ctx context.Context, filter Filter) ([]*Rule, error)

	// ListEnabled retrieves all enabled rules.
	ListEnabled(ctx context.Context) ([]*Rule, error)

	// Subscribe registers for rule change notifications. The returned cancel
	// function must be called to release the subscription.
	Subscribe() (<-chan Change, func())
}

// ChangeOp is the kind of mutation a Change describes.
type ChangeOp string

const (
	ChangeCreated ChangeOp = "created"
	ChangeUpdated ChangeOp = "updated"
	ChangeDeleted ChangeOp = "deleted"
)

// Change notifies subscribers of a rule mutation. Rule is nil for deletions.
type Change struct {
	Op     ChangeOp `json:"op"`
	RuleID string   `json:"rule_id"`
	Rule   *Rule    `json:"rule,omitempty"`
}

// Evaluator routes a rule to the matching condition evaluator and returns the
// entities it flags. Evaluation is a pure read: it never mutates tickets,
// writers, clients, or the rule itself.
type Evaluator interface {
	Test(ctx context.Context, r *Rule) (*TestResult, error)
}
