package client

import "context"

// Repository defines read access to the client collection.
type Repository interface {
	// GetByName retrieves a client by exact name, or nil when no record
	// exists under that name.
	GetByName(ctx context.Context, name string) (*Client, error)

	// List retrieves all clients.
	List(ctx context.Context) ([]*Client, error)

	// Insert stores a client record.
	Insert(ctx context.Context, c *Client) error
}
