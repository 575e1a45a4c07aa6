package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/client"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/ticket"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/writer"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/metrics"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/timeparse"
)

// EvaluatorService implements rule.Evaluator. It routes a rule to the
// condition evaluator matching its type and returns the entities flagged
// against current stored state. Evaluation never writes; running the same
// rule twice against unchanged data yields the same match set.
type EvaluatorService struct {
	tickets ticket.Repository
	writers writer.Repository
	clients client.Repository
	logger  *logger.Logger

	// now is swapped in tests for deterministic day counts.
	now func() time.Time
}

// NewEvaluatorService creates a new rule evaluator
func NewEvaluatorService(
	tickets ticket.Repository,
	writers writer.Repository,
	clients client.Repository,
	log *logger.Logger,
) *EvaluatorService {
	return &EvaluatorService{
		tickets: tickets,
		writers: writers,
		clients: clients,
		logger:  log,
		now:     time.Now,
	}
}

// Test evaluates a rule and returns the matching entities. An unknown rule
// type yields an empty result, not an error.
func (s *EvaluatorService) Test(ctx context.Context, r *rule.Rule) (*rule.TestResult, error) {
	start := s.now()
	result := &rule.TestResult{
		RuleType:    r.Type,
		EvaluatedAt: start.UTC(),
	}

	var err error
	switch r.Type {
	case rule.TypeTicketBased:
		if r.Conditions.Ticket == nil {
			return nil, fmt.Errorf("ticket-based rule %q has no ticket conditions", r.ID)
		}
		result.Tickets, err = s.EvaluateTicketConditions(ctx, r.Conditions.Ticket)
	case rule.TypeWriterBased:
		if r.Conditions.Writer == nil {
			return nil, fmt.Errorf("writer-based rule %q has no writer conditions", r.ID)
		}
		result.Writers, err = s.EvaluateWriterConditions(ctx, r.Conditions.Writer)
	case rule.TypeClientBased:
		if r.Conditions.Client == nil {
			return nil, fmt.Errorf("client-based rule %q has no client conditions", r.ID)
		}
		result.Clients, err = s.EvaluateClientConditions(ctx, r.Conditions.Client)
	default:
		s.logger.With("rule_type", string(r.Type)).Warn("Unknown rule type, returning empty result")
	}

	metrics.RecordEvaluation(string(r.Type), result.MatchCount(), s.now().Sub(start), err)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"rule_id":   r.ID,
			"rule_type": r.Type,
		}).ErrorWithErr(err, "Rule evaluation failed")
		return nil, err
	}
	return result, nil
}

// EvaluateTicketConditions flags tickets that have sat too long, measured
// either from creation (ticket-age) or from entry into their current status
// (status-duration). Tickets whose relevant timestamp cannot be parsed are
// skipped, not errored.
func (s *EvaluatorService) EvaluateTicketConditions(ctx context.Context, c *rule.TicketConditions) ([]rule.TicketMatch, error) {
	checkType := c.CheckType
	if checkType == "" {
		checkType = rule.CheckStatusDuration
	}
	now := s.now()

	if checkType == rule.CheckTicketAge && len(c.Statuses) == 0 {
		tickets, err := s.tickets.List(ctx, ticket.Filter{
			ClientName: c.ClientName,
			Type:       c.TicketType,
		})
		if err != nil {
			return nil, err
		}

		var matches []rule.TicketMatch
		for _, t := range tickets {
			if t.Status.IsTerminal() {
				continue
			}
			if m, ok := ageMatch(t, now, c.DaysInState); ok {
				matches = append(matches, m)
			}
		}
		return matches, nil
	}

	// One query per listed status. The sets are disjoint since a ticket has
	// exactly one status, so no dedup is needed.
	var matches []rule.TicketMatch
	for _, status := range c.Statuses {
		tickets, err := s.tickets.List(ctx, ticket.Filter{
			Status:     status,
			ClientName: c.ClientName,
			Type:       c.TicketType,
		})
		if err != nil {
			return nil, err
		}

		for _, t := range tickets {
			if checkType == rule.CheckTicketAge {
				if m, ok := ageMatch(t, now, c.DaysInState); ok {
					matches = append(matches, m)
				}
				continue
			}

			entry, ok := statusEntryTime(t, status)
			if !ok {
				continue
			}
			days := timeparse.Days(entry, now)
			if days >= c.DaysInState {
				matches = append(matches, ticketMatch(t, days, rule.CheckStatusDuration))
			}
		}
	}
	return matches, nil
}

// statusEntryTime returns when the ticket entered its current status. A todo
// ticket with no history entry falls back to its creation time, the only
// status where creation approximates entry. Any other status with no history
// entry cannot be measured.
func statusEntryTime(t *ticket.Ticket, status ticket.Status) (time.Time, bool) {
	if entry, ok := t.Timeline.StateHistory[status]; ok && entry.Valid {
		return entry.Time, true
	}
	if status == ticket.StatusTodo && t.CreatedAt.Valid {
		return t.CreatedAt.Time, true
	}
	return time.Time{}, false
}

func ageMatch(t *ticket.Ticket, now time.Time, threshold int) (rule.TicketMatch, bool) {
	if !t.CreatedAt.Valid {
		return rule.TicketMatch{}, false
	}
	days := timeparse.Days(t.CreatedAt.Time, now)
	if days < threshold {
		return rule.TicketMatch{}, false
	}
	return ticketMatch(t, days, rule.CheckTicketAge), true
}

func ticketMatch(t *ticket.Ticket, days int, checkType rule.CheckType) rule.TicketMatch {
	return rule.TicketMatch{
		TicketID:   t.ID,
		Title:      t.Title,
		Status:     t.Status,
		ClientName: t.ClientName,
		Type:       t.Type,
		AssignedTo: t.AssignedTo,
		Days:       days,
		CheckType:  checkType,
	}
}

// EvaluateWriterConditions flags team members by workload or inactivity.
// The roster and all tickets are fetched once and joined in memory on exact
// display-name equality.
func (s *EvaluatorService) EvaluateWriterConditions(ctx context.Context, c *rule.WriterConditions) ([]rule.WriterMatch, error) {
	team, err := s.writers.ListTeam(ctx)
	if err != nil {
		return nil, err
	}
	tickets, err := s.tickets.List(ctx, ticket.Filter{})
	if err != nil {
		return nil, err
	}

	byAssignee := make(map[string][]*ticket.Ticket)
	for _, t := range tickets {
		if t.AssignedTo != "" {
			byAssignee[t.AssignedTo] = append(byAssignee[t.AssignedTo], t)
		}
	}

	maxTasks := c.MaxTasks
	if maxTasks <= 0 {
		maxTasks = rule.DefaultMaxTasks
	}
	thresholdDays := c.ThresholdDays
	if thresholdDays <= 0 {
		thresholdDays = rule.DefaultInactiveDays
	}
	cutoff := s.now().AddDate(0, 0, -thresholdDays)

	var matches []rule.WriterMatch
	for _, w := range team {
		if c.WriterName != "" && w.DisplayName != c.WriterName {
			continue
		}
		assigned := byAssignee[w.DisplayName]

		switch c.AlertType {
		case rule.WriterNoTasksAssigned:
			if len(assigned) == 0 {
				matches = append(matches, writerMatch(w, "no tasks assigned", 0))
			}
		case rule.WriterOverloaded:
			active := 0
			for _, t := range assigned {
				for _, st := range ticket.ActiveStatuses() {
					if t.Status == st {
						active++
						break
					}
				}
			}
			if active > maxTasks {
				matches = append(matches, writerMatch(w,
					fmt.Sprintf("overloaded: %d active tasks (limit %d)", active, maxTasks), active))
			}
		case rule.WriterInactive:
			if len(assigned) == 0 {
				continue
			}
			recent := false
			for _, t := range assigned {
				if t.UpdatedAt.Valid && t.UpdatedAt.Time.After(cutoff) {
					recent = true
					break
				}
			}
			if !recent {
				matches = append(matches, writerMatch(w,
					fmt.Sprintf("no activity in the last %d days", thresholdDays), len(assigned)))
			}
		}
	}
	return matches, nil
}

func writerMatch(w *writer.Writer, issue string, taskCount int) rule.WriterMatch {
	return rule.WriterMatch{
		WriterID:    w.ID,
		DisplayName: w.DisplayName,
		Email:       w.Email,
		Issue:       issue,
		TaskCount:   taskCount,
	}
}

// EvaluateClientConditions flags clients with no qualifying ticket activity
// inside the threshold window.
func (s *EvaluatorService) EvaluateClientConditions(ctx context.Context, c *rule.ClientConditions) ([]rule.ClientMatch, error) {
	targets, err := s.resolveClients(ctx, c.ClientName)
	if err != nil {
		return nil, err
	}

	field := ticket.ActivityCreated
	if c.AlertType == rule.ClientNoNewTickets {
		field = ticket.ActivityUpdated
	}
	now := s.now()
	cutoff := now.AddDate(0, 0, -c.ThresholdDays)

	var matches []rule.ClientMatch
	for _, cl := range targets {
		active, err := s.tickets.HasActivitySince(ctx, cl.Name, field, cutoff)
		if err != nil {
			return nil, err
		}
		if active {
			continue
		}

		issue := fmt.Sprintf("no new tickets in the last %d days", c.ThresholdDays)
		if c.AlertType == rule.ClientNoNewTickets {
			issue = fmt.Sprintf("no ticket activity in the last %d days", c.ThresholdDays)
		}
		matches = append(matches, rule.ClientMatch{
			ClientID:          cl.ID,
			Name:              cl.Name,
			Issue:             issue,
			DaysSinceActivity: s.daysSinceActivity(ctx, cl.Name, field, c.ThresholdDays, now),
		})
	}
	return matches, nil
}

// resolveClients returns the clients a rule targets. A named client missing
// from the client collection is still evaluated as a virtual record when at
// least one ticket carries that name; some clients only ever exist as a
// denormalized name on tickets.
func (s *EvaluatorService) resolveClients(ctx context.Context, name string) ([]*client.Client, error) {
	if name == "" {
		return s.clients.List(ctx)
	}

	cl, err := s.clients.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if cl != nil {
		return []*client.Client{cl}, nil
	}

	count, err := s.tickets.CountByClientName(ctx, name)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	s.logger.With("client_name", name).Debug("Client exists only on tickets, evaluating as virtual")
	return []*client.Client{client.Virtual(name)}, nil
}

// daysSinceActivity is best effort: when the recency lookup fails the raw
// threshold is reported instead of failing the whole evaluation.
func (s *EvaluatorService) daysSinceActivity(ctx context.Context, clientName string, field ticket.ActivityField, threshold int, now time.Time) int {
	latest, err := s.tickets.LatestActivity(ctx, clientName, field)
	if err != nil {
		s.logger.With("client_name", clientName).WithError(err).Warn("Last activity lookup failed, reporting threshold")
		return threshold
	}
	if latest == nil {
		return threshold
	}
	ts := latest.CreatedAt
	if field == ticket.ActivityUpdated {
		ts = latest.UpdatedAt
	}
	if !ts.Valid {
		return threshold
	}
	return timeparse.Days(ts.Time, now)
}
