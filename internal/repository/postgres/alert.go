package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/alert"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/errors"
)

type AlertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) alert.Repository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO alerts (id, rule_id, rule_name, rule_type, entity_key, details, metric, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.RuleID, a.RuleName, string(a.RuleType), a.EntityKey,
		a.Details, a.Metric, a.Status,
		a.CreatedAt.Format(time.RFC3339), a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create alert", err)
	}
	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, rule_id, rule_name, rule_type, entity_key, details, metric, status, created_at, updated_at
		FROM alerts WHERE id = ?`, id)
	a, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Alert not found")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get alert", err)
	}
	return a, nil
}

func (r *AlertRepository) Update(ctx context.Context, a *alert.Alert) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE alerts SET details = ?, metric = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		a.Details, a.Metric, a.Status, a.UpdatedAt.Format(time.RFC3339), a.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update alert", err)
	}
	return requireRows(res, "Alert not found")
}

func (r *AlertRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM alerts WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete alert", err)
	}
	return requireRows(res, "Alert not found")
}

func (r *AlertRepository) ListWithPagination(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	where := []string{}
	args := []interface{}{}

	if filter.RuleID != "" {
		where = append(where, "rule_id = ?")
		args = append(args, filter.RuleID)
	}
	if filter.RuleType != "" {
		where = append(where, "rule_type = ?")
		args = append(args, string(filter.RuleType))
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM alerts"+clause, args...).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count alerts", err)
	}

	query := fmt.Sprintf(`
		SELECT id, rule_id, rule_name, rule_type, entity_key, details, metric, status, created_at, updated_at
		FROM alerts%s ORDER BY created_at DESC LIMIT ? OFFSET ?`, clause)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list alerts", err)
	}
	defer rows.Close()

	var alerts []*alert.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan alert", err)
		}
		alerts = append(alerts, a)
	}

	return alerts, total, rows.Err()
}

func (r *AlertRepository) HasOpen(ctx context.Context, ruleID, entityKey string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM alerts WHERE rule_id = ? AND entity_key = ? AND status = ?",
		ruleID, entityKey, alert.StatusOpen,
	).Scan(&count)
	if err != nil {
		return false, errors.DatabaseError("Failed to check open alerts", err)
	}
	return count > 0, nil
}

func (r *AlertRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM alerts GROUP BY status")
	if err != nil {
		return nil, errors.DatabaseError("Failed to count alerts", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, errors.DatabaseError("Failed to scan alert count", err)
		}
		counts[status] = n
	}

	return counts, rows.Err()
}

func scanAlert(row rowScanner) (*alert.Alert, error) {
	var a alert.Alert
	var ruleType, createdAt string
	var updatedAt sql.NullString

	err := row.Scan(&a.ID, &a.RuleID, &a.RuleName, &ruleType, &a.EntityKey,
		&a.Details, &a.Metric, &a.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	a.RuleType = rule.Type(ruleType)
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if updatedAt.Valid {
		a.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	}
	return &a, nil
}
