package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/alert"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/ticket"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/testutil"
)

func testRule(id string, enabled bool) *rule.Rule {
	now := time.Now().UTC().Truncate(time.Second)
	return &rule.Rule{
		ID:          id,
		Name:        "Stuck in client review",
		Description: "Flags tickets sitting with the client too long",
		Type:        rule.TypeTicketBased,
		Enabled:     enabled,
		Conditions: rule.Conditions{
			Ticket: &rule.TicketConditions{
				Statuses:    []ticket.Status{ticket.StatusClientReview},
				DaysInState: 5,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRuleRepository_CRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)
	repo := NewRuleRepository(db)
	ctx := context.Background()

	r := testRule("r1", true)
	if err := repo.Create(ctx, r); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != r.Name || got.Type != r.Type || !got.Enabled {
		t.Errorf("GetByID() = %+v, want stored rule", got)
	}
	if got.Conditions.Ticket == nil || got.Conditions.Ticket.DaysInState != 5 {
		t.Errorf("conditions did not round-trip: %+v", got.Conditions)
	}
	if len(got.Conditions.Ticket.Statuses) != 1 || got.Conditions.Ticket.Statuses[0] != ticket.StatusClientReview {
		t.Errorf("statuses did not round-trip: %+v", got.Conditions.Ticket.Statuses)
	}

	got.Name = "Renamed"
	got.Conditions.Ticket.DaysInState = 7
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	updated, _ := repo.GetByID(ctx, "r1")
	if updated.Name != "Renamed" || updated.Conditions.Ticket.DaysInState != 7 {
		t.Errorf("Update() not persisted: %+v", updated)
	}

	if err := repo.Delete(ctx, "r1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, "r1"); err == nil {
		t.Error("GetByID() after delete should fail")
	}
	if err := repo.Delete(ctx, "r1"); err == nil {
		t.Error("Delete() of missing rule should fail")
	}
}

func TestRuleRepository_ListAndEnabled(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)
	repo := NewRuleRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, testRule("r1", true)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, testRule("r2", false)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	all, err := repo.List(ctx, rule.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List() returned %d rules, want 2", len(all))
	}

	enabled, err := repo.ListEnabled(ctx)
	if err != nil {
		t.Fatalf("ListEnabled() error = %v", err)
	}
	if len(enabled) != 1 || enabled[0].ID != "r1" {
		t.Errorf("ListEnabled() = %+v, want only r1", enabled)
	}

	if err := repo.SetEnabled(ctx, "r2", true); err != nil {
		t.Fatalf("SetEnabled() error = %v", err)
	}
	enabled, _ = repo.ListEnabled(ctx)
	if len(enabled) != 2 {
		t.Errorf("ListEnabled() after toggle = %d rules, want 2", len(enabled))
	}
}

func TestAlertRepository_HasOpenAndCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	open := &alert.Alert{
		ID: "a1", RuleID: "r1", RuleName: "Stuck", RuleType: rule.TypeTicketBased,
		EntityKey: "ticket:t1", Status: alert.StatusOpen, CreatedAt: now, UpdatedAt: now,
	}
	resolved := &alert.Alert{
		ID: "a2", RuleID: "r1", RuleName: "Stuck", RuleType: rule.TypeTicketBased,
		EntityKey: "ticket:t2", Status: alert.StatusResolved, CreatedAt: now, UpdatedAt: now,
	}
	if err := repo.Create(ctx, open); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, resolved); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	has, err := repo.HasOpen(ctx, "r1", "ticket:t1")
	if err != nil {
		t.Fatalf("HasOpen() error = %v", err)
	}
	if !has {
		t.Error("HasOpen() = false for an open alert")
	}

	has, _ = repo.HasOpen(ctx, "r1", "ticket:t2")
	if has {
		t.Error("HasOpen() = true for a resolved alert")
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	if counts[alert.StatusOpen] != 1 || counts[alert.StatusResolved] != 1 {
		t.Errorf("CountByStatus() = %v", counts)
	}

	alerts, total, err := repo.ListWithPagination(ctx, alert.Filter{Status: alert.StatusOpen}, 10, 0)
	if err != nil {
		t.Fatalf("ListWithPagination() error = %v", err)
	}
	if total != 1 || len(alerts) != 1 || alerts[0].ID != "a1" {
		t.Errorf("ListWithPagination() = %v (total %d)", alerts, total)
	}
}
