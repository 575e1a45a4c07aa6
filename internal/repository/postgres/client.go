package postgres

import (
	"context"
	"database/sql"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/client"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/errors"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) client.Repository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) GetByName(ctx context.Context, name string) (*client.Client, error) {
	var c client.Client
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name FROM clients WHERE name = ?", name,
	).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get client", err)
	}
	return &c, nil
}

func (r *ClientRepository) List(ctx context.Context) ([]*client.Client, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM clients ORDER BY name")
	if err != nil {
		return nil, errors.DatabaseError("Failed to list clients", err)
	}
	defer rows.Close()

	var clients []*client.Client
	for rows.Next() {
		var c client.Client
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, errors.DatabaseError("Failed to scan client", err)
		}
		clients = append(clients, &c)
	}

	return clients, rows.Err()
}

func (r *ClientRepository) Insert(ctx context.Context, c *client.Client) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO clients (id, name) VALUES (?, ?)", c.ID, c.Name,
	)
	if err != nil {
		return errors.DatabaseError("Failed to insert client", err)
	}
	return nil
}
