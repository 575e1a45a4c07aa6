package services

import (
	"context"
	"testing"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/ticket"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/testutil"
)

func newTestRuleService(repo *testutil.MockRuleRepository) rule.Service {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewRuleService(repo, log)
}

func validTicketRule() *rule.Rule {
	return &rule.Rule{
		Name:    "Stuck in client review",
		Type:    rule.TypeTicketBased,
		Enabled: true,
		Conditions: rule.Conditions{
			Ticket: &rule.TicketConditions{
				Statuses:    []ticket.Status{ticket.StatusClientReview},
				DaysInState: 5,
			},
		},
	}
}

func TestRuleService_Create(t *testing.T) {
	tests := []struct {
		name    string
		rule    *rule.Rule
		wantErr bool
	}{
		{
			name:    "valid ticket rule",
			rule:    validTicketRule(),
			wantErr: false,
		},
		{
			name: "valid writer rule",
			rule: &rule.Rule{
				Name: "Overloaded writers",
				Type: rule.TypeWriterBased,
				Conditions: rule.Conditions{
					Writer: &rule.WriterConditions{AlertType: rule.WriterOverloaded},
				},
			},
			wantErr: false,
		},
		{
			name: "missing name",
			rule: &rule.Rule{
				Type: rule.TypeTicketBased,
				Conditions: rule.Conditions{
					Ticket: &rule.TicketConditions{
						Statuses:    []ticket.Status{ticket.StatusTodo},
						DaysInState: 1,
					},
				},
			},
			wantErr: true,
		},
		{
			name: "unknown rule type",
			rule: &rule.Rule{Name: "Bad", Type: "mood-based"},
			wantErr: true,
		},
		{
			name: "conditions arm does not match type",
			rule: &rule.Rule{
				Name: "Mismatched",
				Type: rule.TypeTicketBased,
				Conditions: rule.Conditions{
					Writer: &rule.WriterConditions{AlertType: rule.WriterInactive},
				},
			},
			wantErr: true,
		},
		{
			name: "status-duration rule without statuses",
			rule: &rule.Rule{
				Name: "No statuses",
				Type: rule.TypeTicketBased,
				Conditions: rule.Conditions{
					Ticket: &rule.TicketConditions{DaysInState: 3},
				},
			},
			wantErr: true,
		},
		{
			name: "zero threshold on client rule",
			rule: &rule.Rule{
				Name: "Zero threshold",
				Type: rule.TypeClientBased,
				Conditions: rule.Conditions{
					Client: &rule.ClientConditions{AlertType: rule.ClientNoRecentTickets},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockRuleRepository()
			service := newTestRuleService(repo)

			id, err := service.Create(context.Background(), tt.rule)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if id == "" {
					t.Error("Create() returned empty id")
				}
				stored, err := repo.GetByID(context.Background(), id)
				if err != nil {
					t.Fatalf("rule not stored: %v", err)
				}
				if stored.CreatedAt.IsZero() || stored.UpdatedAt.IsZero() {
					t.Error("timestamps not set on create")
				}
			}
		})
	}
}

func TestRuleService_Update(t *testing.T) {
	repo := testutil.NewMockRuleRepository()
	service := newTestRuleService(repo)

	id, err := service.Create(context.Background(), validTicketRule())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	created, _ := repo.GetByID(context.Background(), id)
	createdAt := created.CreatedAt

	updated := validTicketRule()
	updated.ID = id
	updated.Name = "Stuck in review, week threshold"
	updated.Conditions.Ticket.DaysInState = 7

	if err := service.Update(context.Background(), updated); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), id)
	if stored.Conditions.Ticket.DaysInState != 7 {
		t.Errorf("DaysInState = %d, want 7", stored.Conditions.Ticket.DaysInState)
	}
	if !stored.CreatedAt.Equal(createdAt) {
		t.Error("Update() must preserve CreatedAt")
	}

	// Updating a missing rule surfaces the repository error.
	missing := validTicketRule()
	missing.ID = "ghost"
	if err := service.Update(context.Background(), missing); err == nil {
		t.Error("Update() of missing rule should fail")
	}
}

func TestRuleService_SetEnabledAndListEnabled(t *testing.T) {
	repo := testutil.NewMockRuleRepository()
	service := newTestRuleService(repo)

	id, err := service.Create(context.Background(), validTicketRule())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := service.SetEnabled(context.Background(), id, false); err != nil {
		t.Fatalf("SetEnabled() error = %v", err)
	}

	enabled, err := service.ListEnabled(context.Background())
	if err != nil {
		t.Fatalf("ListEnabled() error = %v", err)
	}
	if len(enabled) != 0 {
		t.Errorf("disabled rule still listed as enabled")
	}

	if err := service.SetEnabled(context.Background(), id, true); err != nil {
		t.Fatalf("SetEnabled() error = %v", err)
	}
	enabled, _ = service.ListEnabled(context.Background())
	if len(enabled) != 1 {
		t.Errorf("expected 1 enabled rule, got %d", len(enabled))
	}
}

func TestRuleService_Subscribe(t *testing.T) {
	repo := testutil.NewMockRuleRepository()
	service := newTestRuleService(repo)

	ch, cancel := service.Subscribe()
	defer cancel()

	id, err := service.Create(context.Background(), validTicketRule())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	change := <-ch
	if change.Op != rule.ChangeCreated || change.RuleID != id {
		t.Errorf("got change %+v, want created for %s", change, id)
	}
	if change.Rule == nil {
		t.Error("created change should carry the rule")
	}

	if err := service.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	change = <-ch
	if change.Op != rule.ChangeDeleted || change.RuleID != id {
		t.Errorf("got change %+v, want deleted for %s", change, id)
	}

	// After cancel the channel closes and publishing no longer reaches it.
	cancel()
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}
}
