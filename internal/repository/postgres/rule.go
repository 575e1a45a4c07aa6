package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/errors"
)

type RuleRepository struct {
	db *sql.DB
}

func NewRuleRepository(db *sql.DB) rule.Repository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) Create(ctx context.Context, ru *rule.Rule) error {
	now := time.Now()
	ru.CreatedAt = now
	ru.UpdatedAt = now

	conditions, err := json.Marshal(ru.Conditions)
	if err != nil {
		return errors.DatabaseError("Failed to encode rule conditions", err)
	}

	query := `
		INSERT INTO rules (id, name, description, type, enabled, conditions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		ru.ID, ru.Name, ru.Description, string(ru.Type), boolToInt(ru.Enabled),
		string(conditions), now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create rule", err)
	}

	return nil
}

func (r *RuleRepository) GetByID(ctx context.Context, id string) (*rule.Rule, error) {
	query := `
		SELECT id, name, description, type, enabled, conditions, created_at, updated_at
		FROM rules WHERE id = ?
	`

	ru, err := scanRule(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Rule")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get rule", err)
	}

	return ru, nil
}

func (r *RuleRepository) Update(ctx context.Context, ru *rule.Rule) error {
	ru.UpdatedAt = time.Now()

	conditions, err := json.Marshal(ru.Conditions)
	if err != nil {
		return errors.DatabaseError("Failed to encode rule conditions", err)
	}

	query := `
		UPDATE rules SET name = ?, description = ?, type = ?, enabled = ?, conditions = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		ru.Name, ru.Description, string(ru.Type), boolToInt(ru.Enabled),
		string(conditions), ru.UpdatedAt.Format(time.RFC3339), ru.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update rule", err)
	}

	return requireRows(result, "Rule")
}

func (r *RuleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM rules WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete rule", err)
	}

	return requireRows(result, "Rule")
}

func (r *RuleRepository) SetEnabled(ctx context.Context, id string, enabled bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE rules SET enabled = ?, updated_at = ? WHERE id = ?",
		boolToInt(enabled), time.Now().Format(time.RFC3339), id,
	)
	if err != nil {
		return errors.DatabaseError("Failed to toggle rule", err)
	}

	return requireRows(result, "Rule")
}

func (r *RuleRepository) List(ctx context.Context, filter rule.Filter) ([]*rule.Rule, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Enabled != nil {
		where = append(where, "enabled = ?")
		args = append(args, boolToInt(*filter.Enabled))
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, type, enabled, conditions, created_at, updated_at
		FROM rules WHERE %s ORDER BY created_at DESC
	`, strings.Join(where, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list rules", err)
	}
	defer rows.Close()

	var rules []*rule.Rule
	for rows.Next() {
		ru, err := scanRule(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan rule", err)
		}
		rules = append(rules, ru)
	}

	return rules, rows.Err()
}

func (r *RuleRepository) ListEnabled(ctx context.Context) ([]*rule.Rule, error) {
	enabled := true
	return r.List(ctx, rule.Filter{Enabled: &enabled})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*rule.Rule, error) {
	var ru rule.Rule
	var enabled int
	var conditions, createdAt, updatedAt string

	err := row.Scan(&ru.ID, &ru.Name, &ru.Description, &ru.Type, &enabled, &conditions, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	ru.Enabled = enabled == 1
	if err := json.Unmarshal([]byte(conditions), &ru.Conditions); err != nil {
		return nil, err
	}
	ru.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	ru.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &ru, nil
}

func requireRows(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound(resource)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
