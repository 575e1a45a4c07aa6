package worker

import (
	"context"
	"testing"
	"time"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/alert"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/ticket"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/timeparse"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/services"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/testutil"
)

type countingNotifier struct {
	sent int
}

func (n *countingNotifier) NotifyAlert(ctx context.Context, a *alert.Alert) error {
	n.sent++
	return nil
}

func TestRuleScanner_ScanAll(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	stuck := &ticket.Ticket{
		ID:     "t1",
		Title:  "Landing page copy",
		Status: ticket.StatusClientReview,
		Timeline: ticket.Timeline{
			StateHistory: map[ticket.Status]timeparse.Stored{
				ticket.StatusClientReview: timeparse.At(time.Now().AddDate(0, 0, -6)),
			},
		},
	}

	ruleRepo := testutil.NewMockRuleRepository()
	alertRepo := testutil.NewMockAlertRepository()
	rules := services.NewRuleService(ruleRepo, log)
	alerts := services.NewAlertService(alertRepo, log)
	evaluator := services.NewEvaluatorService(
		testutil.NewMockTicketRepository(stuck),
		testutil.NewMockWriterRepository(),
		testutil.NewMockClientRepository(),
		log,
	)

	enabled := &rule.Rule{
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
	disabled := &rule.Rule{
		Name: "Disabled twin",
		Type: rule.TypeTicketBased,
		Conditions: rule.Conditions{
			Ticket: &rule.TicketConditions{
				Statuses:    []ticket.Status{ticket.StatusClientReview},
				DaysInState: 1,
			},
		},
	}
	if _, err := rules.Create(context.Background(), enabled); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := rules.Create(context.Background(), disabled); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	notifier := &countingNotifier{}
	scanner := NewRuleScanner(rules, evaluator, alerts, notifier, "@every 15m", log)

	scanner.ScanAll(context.Background())

	stored, total, err := alerts.List(context.Background(), alert.Filter{}, 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 alert from the enabled rule only, got %d", total)
	}
	if stored[0].EntityKey != "ticket:t1" {
		t.Errorf("EntityKey = %s, want ticket:t1", stored[0].EntityKey)
	}
	if notifier.sent != 1 {
		t.Errorf("notifications sent = %d, want 1", notifier.sent)
	}

	// A second scan against unchanged data must not re-fire.
	scanner.ScanAll(context.Background())
	_, total, _ = alerts.List(context.Background(), alert.Filter{}, 10, 0)
	if total != 1 {
		t.Errorf("repeat scan re-fired: %d alerts", total)
	}
	if notifier.sent != 1 {
		t.Errorf("repeat scan re-notified: %d", notifier.sent)
	}
}
