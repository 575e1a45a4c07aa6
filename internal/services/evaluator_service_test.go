package services

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/client"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/ticket"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/writer"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/timeparse"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/testutil"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestEvaluator(tickets *testutil.MockTicketRepository, writers *testutil.MockWriterRepository, clients *testutil.MockClientRepository) *EvaluatorService {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	s := NewEvaluatorService(tickets, writers, clients, log)
	s.now = func() time.Time { return testNow }
	return s
}

func daysAgo(n int) timeparse.Stored {
	return timeparse.At(testNow.AddDate(0, 0, -n))
}

func TestEvaluateTicketConditions_StatusDuration(t *testing.T) {
	tests := []struct {
		name        string
		tkt         *ticket.Ticket
		conditions  *rule.TicketConditions
		wantMatch   bool
		wantDays    int
	}{
		{
			name: "six days in client_review against a five day threshold",
			tkt: &ticket.Ticket{
				ID:     "t1",
				Title:  "Landing page copy",
				Status: ticket.StatusClientReview,
				Timeline: ticket.Timeline{
					StateHistory: map[ticket.Status]timeparse.Stored{
						ticket.StatusClientReview: daysAgo(6),
					},
				},
			},
			conditions: &rule.TicketConditions{
				Statuses:    []ticket.Status{ticket.StatusClientReview},
				DaysInState: 5,
			},
			wantMatch: true,
			wantDays:  6,
		},
		{
			name: "six days in client_review against a seven day threshold",
			tkt: &ticket.Ticket{
				ID:     "t2",
				Title:  "Landing page copy",
				Status: ticket.StatusClientReview,
				Timeline: ticket.Timeline{
					StateHistory: map[ticket.Status]timeparse.Stored{
						ticket.StatusClientReview: daysAgo(6),
					},
				},
			},
			conditions: &rule.TicketConditions{
				Statuses:    []ticket.Status{ticket.StatusClientReview},
				DaysInState: 7,
			},
			wantMatch: false,
		},
		{
			name: "todo with no history entry falls back to created_at",
			tkt: &ticket.Ticket{
				ID:        "t3",
				Title:     "Blog outline",
				Status:    ticket.StatusTodo,
				CreatedAt: daysAgo(4),
			},
			conditions: &rule.TicketConditions{
				Statuses:    []ticket.Status{ticket.StatusTodo},
				DaysInState: 3,
			},
			wantMatch: true,
			wantDays:  4,
		},
		{
			name: "non-todo with no history entry is skipped, not defaulted",
			tkt: &ticket.Ticket{
				ID:        "t4",
				Title:     "Case study draft",
				Status:    ticket.StatusInProgress,
				CreatedAt: daysAgo(30),
			},
			conditions: &rule.TicketConditions{
				Statuses:    []ticket.Status{ticket.StatusInProgress},
				DaysInState: 1,
			},
			wantMatch: false,
		},
		{
			name: "invalid history entry is skipped",
			tkt: &ticket.Ticket{
				ID:     "t5",
				Title:  "Newsletter",
				Status: ticket.StatusInternalReview,
				Timeline: ticket.Timeline{
					StateHistory: map[ticket.Status]timeparse.Stored{
						ticket.StatusInternalReview: {},
					},
				},
			},
			conditions: &rule.TicketConditions{
				Statuses:    []ticket.Status{ticket.StatusInternalReview},
				DaysInState: 1,
			},
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestEvaluator(
				testutil.NewMockTicketRepository(tt.tkt),
				testutil.NewMockWriterRepository(),
				testutil.NewMockClientRepository(),
			)

			matches, err := s.EvaluateTicketConditions(context.Background(), tt.conditions)
			if err != nil {
				t.Fatalf("EvaluateTicketConditions() error = %v", err)
			}

			if tt.wantMatch {
				if len(matches) != 1 {
					t.Fatalf("expected 1 match, got %d", len(matches))
				}
				if matches[0].Days != tt.wantDays {
					t.Errorf("Days = %d, want %d", matches[0].Days, tt.wantDays)
				}
				if matches[0].CheckType != rule.CheckStatusDuration {
					t.Errorf("CheckType = %s, want %s", matches[0].CheckType, rule.CheckStatusDuration)
				}
			} else if len(matches) != 0 {
				t.Errorf("expected no matches, got %d", len(matches))
			}
		})
	}
}

func TestEvaluateTicketConditions_TicketAge(t *testing.T) {
	tickets := testutil.NewMockTicketRepository(
		&ticket.Ticket{ID: "old-open", Status: ticket.StatusInProgress, CreatedAt: daysAgo(10)},
		&ticket.Ticket{ID: "old-done", Status: ticket.StatusDone, CreatedAt: daysAgo(10)},
		&ticket.Ticket{ID: "old-invoiced", Status: ticket.StatusInvoiced, CreatedAt: daysAgo(400)},
		&ticket.Ticket{ID: "old-paid", Status: ticket.StatusPaid, CreatedAt: daysAgo(400)},
		&ticket.Ticket{ID: "fresh", Status: ticket.StatusTodo, CreatedAt: daysAgo(1)},
		&ticket.Ticket{ID: "no-date", Status: ticket.StatusTodo},
	)
	s := newTestEvaluator(tickets, testutil.NewMockWriterRepository(), testutil.NewMockClientRepository())

	matches, err := s.EvaluateTicketConditions(context.Background(), &rule.TicketConditions{
		CheckType:   rule.CheckTicketAge,
		DaysInState: 5,
	})
	if err != nil {
		t.Fatalf("EvaluateTicketConditions() error = %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].TicketID != "old-open" {
		t.Errorf("matched %s, want old-open", matches[0].TicketID)
	}
	if matches[0].Days != 10 {
		t.Errorf("Days = %d, want 10", matches[0].Days)
	}
	if matches[0].CheckType != rule.CheckTicketAge {
		t.Errorf("CheckType = %s, want %s", matches[0].CheckType, rule.CheckTicketAge)
	}
}

func TestEvaluateTicketConditions_CeilingDayCount(t *testing.T) {
	// One millisecond into the second day already counts as two days.
	entry := testNow.Add(-(24*time.Hour + time.Millisecond))
	tickets := testutil.NewMockTicketRepository(&ticket.Ticket{
		ID:     "t1",
		Status: ticket.StatusInProgress,
		Timeline: ticket.Timeline{
			StateHistory: map[ticket.Status]timeparse.Stored{
				ticket.StatusInProgress: timeparse.At(entry),
			},
		},
	})
	s := newTestEvaluator(tickets, testutil.NewMockWriterRepository(), testutil.NewMockClientRepository())

	matches, err := s.EvaluateTicketConditions(context.Background(), &rule.TicketConditions{
		Statuses:    []ticket.Status{ticket.StatusInProgress},
		DaysInState: 2,
	})
	if err != nil {
		t.Fatalf("EvaluateTicketConditions() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Days != 2 {
		t.Errorf("Days = %d, want 2", matches[0].Days)
	}
}

func TestEvaluateTicketConditions_ClientAndTypeFilters(t *testing.T) {
	tickets := testutil.NewMockTicketRepository(
		&ticket.Ticket{ID: "t1", Status: ticket.StatusInProgress, ClientName: "Acme", Type: "blog",
			Timeline: ticket.Timeline{StateHistory: map[ticket.Status]timeparse.Stored{ticket.StatusInProgress: daysAgo(9)}}},
		&ticket.Ticket{ID: "t2", Status: ticket.StatusInProgress, ClientName: "Globex", Type: "blog",
			Timeline: ticket.Timeline{StateHistory: map[ticket.Status]timeparse.Stored{ticket.StatusInProgress: daysAgo(9)}}},
		&ticket.Ticket{ID: "t3", Status: ticket.StatusInProgress, ClientName: "Acme", Type: "whitepaper",
			Timeline: ticket.Timeline{StateHistory: map[ticket.Status]timeparse.Stored{ticket.StatusInProgress: daysAgo(9)}}},
	)
	s := newTestEvaluator(tickets, testutil.NewMockWriterRepository(), testutil.NewMockClientRepository())

	matches, err := s.EvaluateTicketConditions(context.Background(), &rule.TicketConditions{
		Statuses:    []ticket.Status{ticket.StatusInProgress},
		DaysInState: 5,
		ClientName:  "Acme",
		TicketType:  "blog",
	})
	if err != nil {
		t.Fatalf("EvaluateTicketConditions() error = %v", err)
	}
	if len(matches) != 1 || matches[0].TicketID != "t1" {
		t.Fatalf("expected only t1, got %+v", matches)
	}
}

func TestEvaluateWriterConditions(t *testing.T) {
	team := []*writer.Writer{
		{ID: "w1", DisplayName: "Alice Park", Email: "alice@agency.test", Role: writer.RoleWriter},
		{ID: "w2", DisplayName: "Bob Chen", Role: writer.RoleWriter},
		{ID: "w3", DisplayName: "Carol Diaz", Role: writer.RoleManager},
	}

	var tickets []*ticket.Ticket
	// Alice carries six active tickets.
	for i := 0; i < 6; i++ {
		tickets = append(tickets, &ticket.Ticket{
			ID:         fmt.Sprintf("a%d", i),
			Status:     ticket.StatusInProgress,
			AssignedTo: "Alice Park",
			UpdatedAt:  daysAgo(1),
		})
	}
	// Carol has work but nothing touched in two weeks.
	tickets = append(tickets, &ticket.Ticket{
		ID:         "c1",
		Status:     ticket.StatusInProgress,
		AssignedTo: "Carol Diaz",
		UpdatedAt:  daysAgo(14),
	})

	s := newTestEvaluator(
		testutil.NewMockTicketRepository(tickets...),
		testutil.NewMockWriterRepository(team...),
		testutil.NewMockClientRepository(),
	)

	t.Run("overloaded", func(t *testing.T) {
		matches, err := s.EvaluateWriterConditions(context.Background(), &rule.WriterConditions{
			AlertType: rule.WriterOverloaded,
			MaxTasks:  5,
		})
		if err != nil {
			t.Fatalf("EvaluateWriterConditions() error = %v", err)
		}
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matches))
		}
		if matches[0].DisplayName != "Alice Park" || matches[0].TaskCount != 6 {
			t.Errorf("got %+v, want Alice Park with 6 tasks", matches[0])
		}
	})

	t.Run("no tasks assigned", func(t *testing.T) {
		matches, err := s.EvaluateWriterConditions(context.Background(), &rule.WriterConditions{
			AlertType: rule.WriterNoTasksAssigned,
		})
		if err != nil {
			t.Fatalf("EvaluateWriterConditions() error = %v", err)
		}
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matches))
		}
		if matches[0].DisplayName != "Bob Chen" || matches[0].TaskCount != 0 {
			t.Errorf("got %+v, want Bob Chen with 0 tasks", matches[0])
		}
	})

	t.Run("inactive", func(t *testing.T) {
		matches, err := s.EvaluateWriterConditions(context.Background(), &rule.WriterConditions{
			AlertType:     rule.WriterInactive,
			ThresholdDays: 7,
		})
		if err != nil {
			t.Fatalf("EvaluateWriterConditions() error = %v", err)
		}
		// Bob has no tickets at all so inactive does not apply to him.
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matches))
		}
		if matches[0].DisplayName != "Carol Diaz" {
			t.Errorf("got %s, want Carol Diaz", matches[0].DisplayName)
		}
	})

	t.Run("single writer filter uses exact name match", func(t *testing.T) {
		matches, err := s.EvaluateWriterConditions(context.Background(), &rule.WriterConditions{
			AlertType:  rule.WriterNoTasksAssigned,
			WriterName: "alice park",
		})
		if err != nil {
			t.Fatalf("EvaluateWriterConditions() error = %v", err)
		}
		if len(matches) != 0 {
			t.Errorf("case-different name must not match, got %d", len(matches))
		}
	})
}

func TestEvaluateClientConditions(t *testing.T) {
	clients := testutil.NewMockClientRepository(
		&client.Client{ID: "c1", Name: "Acme"},
		&client.Client{ID: "c2", Name: "Globex"},
	)
	tickets := testutil.NewMockTicketRepository(
		// Acme: created long ago but updated three days ago.
		&ticket.Ticket{ID: "t1", ClientName: "Acme", Status: ticket.StatusInProgress,
			CreatedAt: daysAgo(40), UpdatedAt: daysAgo(3)},
		// Globex: nothing for twenty days.
		&ticket.Ticket{ID: "t2", ClientName: "Globex", Status: ticket.StatusDone,
			CreatedAt: daysAgo(20), UpdatedAt: daysAgo(20)},
	)
	s := newTestEvaluator(tickets, testutil.NewMockWriterRepository(), clients)

	t.Run("recent update inside window is not flagged", func(t *testing.T) {
		matches, err := s.EvaluateClientConditions(context.Background(), &rule.ClientConditions{
			AlertType:     rule.ClientNoNewTickets,
			ThresholdDays: 5,
			ClientName:    "Acme",
		})
		if err != nil {
			t.Fatalf("EvaluateClientConditions() error = %v", err)
		}
		if len(matches) != 0 {
			t.Errorf("expected no matches, got %+v", matches)
		}
	})

	t.Run("stale client is flagged with days since activity", func(t *testing.T) {
		matches, err := s.EvaluateClientConditions(context.Background(), &rule.ClientConditions{
			AlertType:     rule.ClientNoNewTickets,
			ThresholdDays: 5,
			ClientName:    "Globex",
		})
		if err != nil {
			t.Fatalf("EvaluateClientConditions() error = %v", err)
		}
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matches))
		}
		if matches[0].DaysSinceActivity != 20 {
			t.Errorf("DaysSinceActivity = %d, want 20", matches[0].DaysSinceActivity)
		}
	})

	t.Run("no client name evaluates the whole roster", func(t *testing.T) {
		matches, err := s.EvaluateClientConditions(context.Background(), &rule.ClientConditions{
			AlertType:     rule.ClientNoRecentTickets,
			ThresholdDays: 10,
		})
		if err != nil {
			t.Fatalf("EvaluateClientConditions() error = %v", err)
		}
		// Acme's newest ticket was created 40 days ago, Globex's 20.
		if len(matches) != 2 {
			t.Fatalf("expected both clients flagged, got %d", len(matches))
		}
	})
}

func TestEvaluateClientConditions_VirtualClient(t *testing.T) {
	// "Initech" never got a client record but has a ticket carrying its name.
	tickets := testutil.NewMockTicketRepository(
		&ticket.Ticket{ID: "t1", ClientName: "Initech", Status: ticket.StatusDone,
			CreatedAt: daysAgo(30), UpdatedAt: daysAgo(30)},
	)
	s := newTestEvaluator(tickets, testutil.NewMockWriterRepository(), testutil.NewMockClientRepository())

	matches, err := s.EvaluateClientConditions(context.Background(), &rule.ClientConditions{
		AlertType:     rule.ClientNoRecentTickets,
		ThresholdDays: 7,
		ClientName:    "Initech",
	})
	if err != nil {
		t.Fatalf("EvaluateClientConditions() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected virtual client evaluation, got %d matches", len(matches))
	}
	if matches[0].ClientID != client.VirtualID {
		t.Errorf("ClientID = %s, want %s", matches[0].ClientID, client.VirtualID)
	}
	if matches[0].Name != "Initech" {
		t.Errorf("Name = %s, want Initech", matches[0].Name)
	}
}

func TestEvaluateClientConditions_UnknownNameNoTickets(t *testing.T) {
	s := newTestEvaluator(
		testutil.NewMockTicketRepository(),
		testutil.NewMockWriterRepository(),
		testutil.NewMockClientRepository(),
	)

	matches, err := s.EvaluateClientConditions(context.Background(), &rule.ClientConditions{
		AlertType:     rule.ClientNoRecentTickets,
		ThresholdDays: 7,
		ClientName:    "Nowhere Inc",
	})
	if err != nil {
		t.Fatalf("EvaluateClientConditions() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("name with no record and no tickets must evaluate to empty, got %d", len(matches))
	}
}

func TestEvaluateClientConditions_DegradedRecencyLookup(t *testing.T) {
	clients := testutil.NewMockClientRepository(&client.Client{ID: "c1", Name: "Globex"})
	tickets := testutil.NewMockTicketRepository(
		&ticket.Ticket{ID: "t1", ClientName: "Globex", Status: ticket.StatusDone,
			CreatedAt: daysAgo(20), UpdatedAt: daysAgo(20)},
	)
	tickets.LatestActivityErr = fmt.Errorf("missing index")
	s := newTestEvaluator(tickets, testutil.NewMockWriterRepository(), clients)

	matches, err := s.EvaluateClientConditions(context.Background(), &rule.ClientConditions{
		AlertType:     rule.ClientNoRecentTickets,
		ThresholdDays: 7,
		ClientName:    "Globex",
	})
	if err != nil {
		t.Fatalf("recency lookup failure must not fail the evaluation: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].DaysSinceActivity != 7 {
		t.Errorf("degraded DaysSinceActivity = %d, want the threshold 7", matches[0].DaysSinceActivity)
	}
}

func TestTest_DispatchAndIdempotence(t *testing.T) {
	tickets := testutil.NewMockTicketRepository(
		&ticket.Ticket{ID: "t1", Status: ticket.StatusClientReview,
			Timeline: ticket.Timeline{StateHistory: map[ticket.Status]timeparse.Stored{ticket.StatusClientReview: daysAgo(6)}}},
		&ticket.Ticket{ID: "t2", Status: ticket.StatusClientReview,
			Timeline: ticket.Timeline{StateHistory: map[ticket.Status]timeparse.Stored{ticket.StatusClientReview: daysAgo(8)}}},
	)
	s := newTestEvaluator(tickets, testutil.NewMockWriterRepository(), testutil.NewMockClientRepository())

	r := &rule.Rule{
		ID:   "r1",
		Type: rule.TypeTicketBased,
		Conditions: rule.Conditions{
			Ticket: &rule.TicketConditions{
				Statuses:    []ticket.Status{ticket.StatusClientReview},
				DaysInState: 5,
			},
		},
	}

	first, err := s.Test(context.Background(), r)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	second, err := s.Test(context.Background(), r)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}

	if first.RuleType != rule.TypeTicketBased {
		t.Errorf("RuleType = %s", first.RuleType)
	}
	if got, want := matchedIDs(first.Tickets), matchedIDs(second.Tickets); !equalStrings(got, want) {
		t.Errorf("repeated evaluation diverged: %v vs %v", got, want)
	}
	if first.MatchCount() != 2 {
		t.Errorf("MatchCount() = %d, want 2", first.MatchCount())
	}
}

func TestTest_UnknownRuleType(t *testing.T) {
	s := newTestEvaluator(
		testutil.NewMockTicketRepository(),
		testutil.NewMockWriterRepository(),
		testutil.NewMockClientRepository(),
	)

	result, err := s.Test(context.Background(), &rule.Rule{ID: "r1", Type: "sentiment-based"})
	if err != nil {
		t.Fatalf("unknown type must not error, got %v", err)
	}
	if result.MatchCount() != 0 {
		t.Errorf("unknown type must yield an empty result, got %d matches", result.MatchCount())
	}
}

func matchedIDs(matches []rule.TicketMatch) []string {
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.TicketID)
	}
	sort.Strings(ids)
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
