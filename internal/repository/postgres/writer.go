package postgres

import (
	"context"
	"database/sql"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/writer"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/errors"
)

type WriterRepository struct {
	db *sql.DB
}

func NewWriterRepository(db *sql.DB) writer.Repository {
	return &WriterRepository{db: db}
}

func (r *WriterRepository) ListTeam(ctx context.Context) ([]*writer.Writer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, display_name, email, role
		FROM writers WHERE role IN (?, ?) ORDER BY display_name
	`, writer.RoleWriter, writer.RoleManager)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list writers", err)
	}
	defer rows.Close()

	var writers []*writer.Writer
	for rows.Next() {
		var w writer.Writer
		var email sql.NullString
		if err := rows.Scan(&w.ID, &w.DisplayName, &email, &w.Role); err != nil {
			return nil, errors.DatabaseError("Failed to scan writer", err)
		}
		w.Email = email.String
		writers = append(writers, &w)
	}

	return writers, rows.Err()
}

func (r *WriterRepository) Insert(ctx context.Context, w *writer.Writer) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO writers (id, display_name, email, role) VALUES (?, ?, ?, ?)",
		w.ID, w.DisplayName, w.Email, w.Role,
	)
	if err != nil {
		return errors.DatabaseError("Failed to insert writer", err)
	}
	return nil
}
