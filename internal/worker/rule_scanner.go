package worker

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/alert"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/services"
)

// RuleScanner periodically evaluates all enabled rules and records alerts for
// the entities they flag. Already-open alerts for the same rule/entity pair
// are suppressed by the alert service, so repeated scans do not re-fire.
type RuleScanner struct {
	rules     rule.Service
	evaluator rule.Evaluator
	alerts    alert.Service
	notifier  services.Notifier
	schedule  string
	logger    *logger.Logger
	cron      *cron.Cron
}

// NewRuleScanner creates a new rule scanner worker
func NewRuleScanner(
	rules rule.Service,
	evaluator rule.Evaluator,
	alerts alert.Service,
	notifier services.Notifier,
	schedule string,
	log *logger.Logger,
) *RuleScanner {
	return &RuleScanner{
		rules:     rules,
		evaluator: evaluator,
		alerts:    alerts,
		notifier:  notifier,
		schedule:  schedule,
		logger:    log,
	}
}

// Start runs an initial scan and then scans on the configured cron schedule
// until the context is cancelled.
func (s *RuleScanner) Start(ctx context.Context) error {
	s.logger.With("schedule", s.schedule).Info("Starting rule scanner worker")

	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.schedule, func() {
		s.ScanAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid scanner schedule %q: %w", s.schedule, err)
	}

	s.ScanAll(ctx)
	s.cron.Start()

	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
	s.logger.Info("Rule scanner worker stopped")
	return nil
}

// ScanAll evaluates every enabled rule. A failing rule is logged and skipped;
// it never aborts the rest of the scan.
func (s *RuleScanner) ScanAll(ctx context.Context) {
	rules, err := s.rules.ListEnabled(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list enabled rules for scan")
		return
	}

	s.logger.With("rules", len(rules)).Debug("Scanning enabled rules")

	fired := 0
	for _, r := range rules {
		n, err := s.scanRule(ctx, r)
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"rule_id":   r.ID,
				"rule_type": r.Type,
			}).ErrorWithErr(err, "Rule scan failed")
			continue
		}
		fired += n
	}

	if fired > 0 {
		s.logger.With("alerts", fired).Info("Rule scan recorded alerts")
	}
}

func (s *RuleScanner) scanRule(ctx context.Context, r *rule.Rule) (int, error) {
	result, err := s.evaluator.Test(ctx, r)
	if err != nil {
		return 0, err
	}

	fired := 0
	for _, a := range alertsFromResult(r, result) {
		recorded, err := s.alerts.Record(ctx, a)
		if err != nil {
			return fired, err
		}
		if recorded == nil {
			continue
		}
		fired++

		if s.notifier != nil {
			if err := s.notifier.NotifyAlert(ctx, recorded); err != nil {
				s.logger.With("alert_id", recorded.ID).WithError(err).Warn("Alert notification failed")
			}
		}
	}
	return fired, nil
}

// alertsFromResult flattens an evaluation result into alert records, one per
// flagged entity, keyed so the open-alert dedupe works per entity.
func alertsFromResult(r *rule.Rule, result *rule.TestResult) []*alert.Alert {
	var alerts []*alert.Alert

	for _, m := range result.Tickets {
		alerts = append(alerts, &alert.Alert{
			RuleID:    r.ID,
			RuleName:  r.Name,
			RuleType:  r.Type,
			EntityKey: "ticket:" + m.TicketID,
			Details:   fmt.Sprintf("%q has spent %d days in %s", m.Title, m.Days, m.Status),
			Metric:    m.Days,
		})
	}
	for _, m := range result.Writers {
		alerts = append(alerts, &alert.Alert{
			RuleID:    r.ID,
			RuleName:  r.Name,
			RuleType:  r.Type,
			EntityKey: "writer:" + m.WriterID,
			Details:   fmt.Sprintf("%s: %s", m.DisplayName, m.Issue),
			Metric:    m.TaskCount,
		})
	}
	for _, m := range result.Clients {
		alerts = append(alerts, &alert.Alert{
			RuleID:    r.ID,
			RuleName:  r.Name,
			RuleType:  r.Type,
			EntityKey: "client:" + m.ClientID + ":" + m.Name,
			Details:   fmt.Sprintf("%s: %s", m.Name, m.Issue),
			Metric:    m.DaysSinceActivity,
		})
	}
	return alerts
}
