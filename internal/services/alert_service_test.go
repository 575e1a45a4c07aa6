package services

import (
	"context"
	"testing"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/alert"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/testutil"
)

func newTestAlertService(repo *testutil.MockAlertRepository) alert.Service {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewAlertService(repo, log)
}

func TestAlertService_RecordSuppressesDuplicates(t *testing.T) {
	repo := testutil.NewMockAlertRepository()
	service := newTestAlertService(repo)

	first, err := service.Record(context.Background(), &alert.Alert{
		RuleID:    "r1",
		RuleName:  "Stuck in client review",
		RuleType:  rule.TypeTicketBased,
		EntityKey: "ticket:t1",
		Details:   "6 days in client_review",
		Metric:    6,
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if first == nil {
		t.Fatal("first Record() was suppressed")
	}
	if first.Status != alert.StatusOpen {
		t.Errorf("Status = %s, want open", first.Status)
	}

	// Same rule/entity while the first is still open.
	dup, err := service.Record(context.Background(), &alert.Alert{
		RuleID:    "r1",
		RuleType:  rule.TypeTicketBased,
		EntityKey: "ticket:t1",
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if dup != nil {
		t.Error("duplicate open alert was not suppressed")
	}

	// A different entity under the same rule still fires.
	other, err := service.Record(context.Background(), &alert.Alert{
		RuleID:    "r1",
		RuleType:  rule.TypeTicketBased,
		EntityKey: "ticket:t2",
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if other == nil {
		t.Error("different entity was wrongly suppressed")
	}

	// Resolving the first alert re-arms that rule/entity pair.
	if err := service.UpdateStatus(context.Background(), first.ID, alert.StatusResolved); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	again, err := service.Record(context.Background(), &alert.Alert{
		RuleID:    "r1",
		RuleType:  rule.TypeTicketBased,
		EntityKey: "ticket:t1",
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if again == nil {
		t.Error("resolved alert should not suppress a new firing")
	}
}

func TestAlertService_UpdateStatus(t *testing.T) {
	repo := testutil.NewMockAlertRepository()
	service := newTestAlertService(repo)

	a, err := service.Record(context.Background(), &alert.Alert{
		RuleID:    "r1",
		RuleType:  rule.TypeWriterBased,
		EntityKey: "writer:w1",
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if err := service.UpdateStatus(context.Background(), a.ID, alert.StatusAcknowledged); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	stored, _ := repo.GetByID(context.Background(), a.ID)
	if stored.Status != alert.StatusAcknowledged {
		t.Errorf("Status = %s, want acknowledged", stored.Status)
	}

	if err := service.UpdateStatus(context.Background(), a.ID, "snoozed"); err == nil {
		t.Error("unknown status should be rejected")
	}
}

func TestAlertService_ListAndSummary(t *testing.T) {
	repo := testutil.NewMockAlertRepository()
	service := newTestAlertService(repo)

	for _, ek := range []string{"client:Acme", "client:Globex", "client:Initech"} {
		if _, err := service.Record(context.Background(), &alert.Alert{
			RuleID:    "r1",
			RuleType:  rule.TypeClientBased,
			EntityKey: ek,
		}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	alerts, total, err := service.List(context.Background(), alert.Filter{RuleType: rule.TypeClientBased}, 2, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(alerts) != 2 {
		t.Errorf("page size = %d, want 2", len(alerts))
	}

	summary, err := service.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
	if summary[alert.StatusOpen] != 3 {
		t.Errorf("open count = %d, want 3", summary[alert.StatusOpen])
	}
}
