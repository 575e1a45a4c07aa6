package writer

import "context"

// Repository defines read access to the writer roster.
type Repository interface {
	// ListTeam retrieves everyone with the writer or manager role.
	ListTeam(ctx context.Context) ([]*Writer, error)

	// Insert stores a roster entry.
	Insert(ctx context.Context, w *Writer) error
}
