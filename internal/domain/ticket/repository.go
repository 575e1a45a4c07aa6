package ticket

import (
	"context"
	"time"
)

// Repository defines read access to the ticket collection. The evaluators
// never mutate tickets; Insert exists for seeding and tests.
type Repository interface {
	// List retrieves tickets matching the filter, timeline included.
	List(ctx context.Context, filter Filter) ([]*Ticket, error)

	// HasActivitySince reports whether any ticket for the client has the
	// given date field newer than cutoff.
	HasActivitySince(ctx context.Context, clientName string, field ActivityField, cutoff time.Time) (bool, error)

	// LatestActivity returns the single most recent ticket for a client,
	// ordered by the given date field descending, or nil when the client has
	// no tickets.
	LatestActivity(ctx context.Context, clientName string, field ActivityField) (*Ticket, error)

	// CountByClientName counts tickets referencing a client by name.
	CountByClientName(ctx context.Context, clientName string) (int, error)

	// Insert stores a ticket.
	Insert(ctx context.Context, t *Ticket) error
}
