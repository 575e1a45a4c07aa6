package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/ticket"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/errors"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/timeparse"
)

type TicketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) ticket.Repository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.ClientName != "" {
		where = append(where, "client_name = ?")
		args = append(args, filter.ClientName)
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.AssignedTo != "" {
		where = append(where, "assigned_to = ?")
		args = append(args, filter.AssignedTo)
	}

	query := fmt.Sprintf(`
		SELECT id, title, status, client_name, type, assigned_to, created_at, updated_at, timeline
		FROM tickets WHERE %s
	`, strings.Join(where, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list tickets", err)
	}
	defer rows.Close()

	var tickets []*ticket.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan ticket", err)
		}
		tickets = append(tickets, t)
	}

	return tickets, rows.Err()
}

func (r *TicketRepository) LatestActivity(ctx context.Context, clientName string, field ticket.ActivityField) (*ticket.Ticket, error) {
	column := "updated_at"
	if field == ticket.ActivityCreated {
		column = "created_at"
	}

	query := fmt.Sprintf(`
		SELECT id, title, status, client_name, type, assigned_to, created_at, updated_at, timeline
		FROM tickets WHERE client_name = ? ORDER BY %s DESC LIMIT 1
	`, column)

	t, err := scanTicket(r.db.QueryRowContext(ctx, query, clientName))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to query latest activity", err)
	}

	return t, nil
}

func (r *TicketRepository) HasActivitySince(ctx context.Context, clientName string, field ticket.ActivityField, cutoff time.Time) (bool, error) {
	column := "updated_at"
	if field == ticket.ActivityCreated {
		column = "created_at"
	}

	// Date columns hold RFC3339 text, which orders lexicographically.
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM tickets WHERE client_name = ? AND %s > ?", column)

	var count int
	err := r.db.QueryRowContext(ctx, query, clientName,
		cutoff.UTC().Format("2006-01-02T15:04:05Z07:00"),
	).Scan(&count)
	if err != nil {
		return false, errors.DatabaseError("Failed to query ticket activity", err)
	}
	return count > 0, nil
}

func (r *TicketRepository) CountByClientName(ctx context.Context, clientName string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tickets WHERE client_name = ?", clientName,
	).Scan(&count)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count tickets", err)
	}
	return count, nil
}

func (r *TicketRepository) Insert(ctx context.Context, t *ticket.Ticket) error {
	timeline, err := json.Marshal(t.Timeline)
	if err != nil {
		return errors.DatabaseError("Failed to encode ticket timeline", err)
	}

	query := `
		INSERT INTO tickets (id, title, status, client_name, type, assigned_to, created_at, updated_at, timeline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.Title, string(t.Status), t.ClientName, t.Type, t.AssignedTo,
		storedToColumn(t.CreatedAt), storedToColumn(t.UpdatedAt), string(timeline),
	)
	if err != nil {
		return errors.DatabaseError("Failed to insert ticket", err)
	}

	return nil
}

func scanTicket(row rowScanner) (*ticket.Ticket, error) {
	var t ticket.Ticket
	var clientName, typ, assignedTo, createdAt, updatedAt, timeline sql.NullString

	err := row.Scan(&t.ID, &t.Title, &t.Status, &clientName, &typ, &assignedTo, &createdAt, &updatedAt, &timeline)
	if err != nil {
		return nil, err
	}

	t.ClientName = clientName.String
	t.Type = typ.String
	t.AssignedTo = assignedTo.String

	// Rows written by older pipeline versions use several date encodings;
	// normalize rather than reject.
	t.CreatedAt = timeparse.ParseString(createdAt.String)
	t.UpdatedAt = timeparse.ParseString(updatedAt.String)

	if timeline.Valid && timeline.String != "" {
		if err := json.Unmarshal([]byte(timeline.String), &t.Timeline); err != nil {
			// A corrupt timeline blob degrades to "no history", it does not
			// fail the whole query.
			t.Timeline = ticket.Timeline{}
		}
	}

	return &t, nil
}

func storedToColumn(s timeparse.Stored) interface{} {
	if !s.Valid {
		return nil
	}
	return s.Time.Format("2006-01-02T15:04:05Z07:00")
}
