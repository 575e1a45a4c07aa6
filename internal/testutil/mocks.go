package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/alert"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/client"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/ticket"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/writer"
)

// MockTicketRepository is a mock implementation of ticket.Repository
type MockTicketRepository struct {
	Tickets []*ticket.Ticket

	ListError         error
	ActivityError     error
	LatestActivityErr error
}

func NewMockTicketRepository(tickets ...*ticket.Ticket) *MockTicketRepository {
	return &MockTicketRepository{Tickets: tickets}
}

func (m *MockTicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []*ticket.Ticket
	for _, t := range m.Tickets {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.ClientName != "" && t.ClientName != filter.ClientName {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.AssignedTo != "" && t.AssignedTo != filter.AssignedTo {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *MockTicketRepository) HasActivitySince(ctx context.Context, clientName string, field ticket.ActivityField, cutoff time.Time) (bool, error) {
	if m.ActivityError != nil {
		return false, m.ActivityError
	}
	for _, t := range m.Tickets {
		if t.ClientName != clientName {
			continue
		}
		ts := t.CreatedAt
		if field == ticket.ActivityUpdated {
			ts = t.UpdatedAt
		}
		if ts.Valid && ts.Time.After(cutoff) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTicketRepository) LatestActivity(ctx context.Context, clientName string, field ticket.ActivityField) (*ticket.Ticket, error) {
	if m.LatestActivityErr != nil {
		return nil, m.LatestActivityErr
	}
	var latest *ticket.Ticket
	var latestAt time.Time
	for _, t := range m.Tickets {
		if t.ClientName != clientName {
			continue
		}
		ts := t.CreatedAt
		if field == ticket.ActivityUpdated {
			ts = t.UpdatedAt
		}
		if !ts.Valid {
			continue
		}
		if latest == nil || ts.Time.After(latestAt) {
			latest = t
			latestAt = ts.Time
		}
	}
	return latest, nil
}

func (m *MockTicketRepository) CountByClientName(ctx context.Context, clientName string) (int, error) {
	count := 0
	for _, t := range m.Tickets {
		if t.ClientName == clientName {
			count++
		}
	}
	return count, nil
}

func (m *MockTicketRepository) Insert(ctx context.Context, t *ticket.Ticket) error {
	m.Tickets = append(m.Tickets, t)
	return nil
}

// MockWriterRepository is a mock implementation of writer.Repository
type MockWriterRepository struct {
	Writers   []*writer.Writer
	ListError error
}

func NewMockWriterRepository(writers ...*writer.Writer) *MockWriterRepository {
	return &MockWriterRepository{Writers: writers}
}

func (m *MockWriterRepository) ListTeam(ctx context.Context) ([]*writer.Writer, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.Writers, nil
}

func (m *MockWriterRepository) Insert(ctx context.Context, w *writer.Writer) error {
	m.Writers = append(m.Writers, w)
	return nil
}

// MockClientRepository is a mock implementation of client.Repository
type MockClientRepository struct {
	Clients   []*client.Client
	GetError  error
	ListError error
}

func NewMockClientRepository(clients ...*client.Client) *MockClientRepository {
	return &MockClientRepository{Clients: clients}
}

func (m *MockClientRepository) GetByName(ctx context.Context, name string) (*client.Client, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, c := range m.Clients {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockClientRepository) List(ctx context.Context) ([]*client.Client, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.Clients, nil
}

func (m *MockClientRepository) Insert(ctx context.Context, c *client.Client) error {
	m.Clients = append(m.Clients, c)
	return nil
}

// MockRuleRepository is a mock implementation of rule.Repository
type MockRuleRepository struct {
	Rules map[string]*rule.Rule

	CreateError error
	GetError    error
	UpdateError error
	DeleteError error
}

func NewMockRuleRepository() *MockRuleRepository {
	return &MockRuleRepository{Rules: make(map[string]*rule.Rule)}
}

func (m *MockRuleRepository) Create(ctx context.Context, r *rule.Rule) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Rules[r.ID] = r
	return nil
}

func (m *MockRuleRepository) GetByID(ctx context.Context, id string) (*rule.Rule, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	r, ok := m.Rules[id]
	if !ok {
		return nil, fmt.Errorf("rule not found")
	}
	return r, nil
}

func (m *MockRuleRepository) Update(ctx context.Context, r *rule.Rule) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Rules[r.ID]; !ok {
		return fmt.Errorf("rule not found")
	}
	m.Rules[r.ID] = r
	return nil
}

func (m *MockRuleRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if _, ok := m.Rules[id]; !ok {
		return fmt.Errorf("rule not found")
	}
	delete(m.Rules, id)
	return nil
}

func (m *MockRuleRepository) SetEnabled(ctx context.Context, id string, enabled bool) error {
	r, ok := m.Rules[id]
	if !ok {
		return fmt.Errorf("rule not found")
	}
	r.Enabled = enabled
	return nil
}

func (m *MockRuleRepository) List(ctx context.Context, filter rule.Filter) ([]*rule.Rule, error) {
	var out []*rule.Rule
	for _, r := range m.Rules {
		if filter.Type != "" && r.Type != filter.Type {
			continue
		}
		if filter.Enabled != nil && r.Enabled != *filter.Enabled {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *MockRuleRepository) ListEnabled(ctx context.Context) ([]*rule.Rule, error) {
	enabled := true
	return m.List(ctx, rule.Filter{Enabled: &enabled})
}

// MockAlertRepository is a mock implementation of alert.Repository
type MockAlertRepository struct {
	Alerts map[string]*alert.Alert

	CreateError error
}

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{Alerts: make(map[string]*alert.Alert)}
}

func (m *MockAlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Alerts[a.ID] = a
	return nil
}

func (m *MockAlertRepository) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	a, ok := m.Alerts[id]
	if !ok {
		return nil, fmt.Errorf("alert not found")
	}
	return a, nil
}

func (m *MockAlertRepository) Update(ctx context.Context, a *alert.Alert) error {
	if _, ok := m.Alerts[a.ID]; !ok {
		return fmt.Errorf("alert not found")
	}
	m.Alerts[a.ID] = a
	return nil
}

func (m *MockAlertRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.Alerts[id]; !ok {
		return fmt.Errorf("alert not found")
	}
	delete(m.Alerts, id)
	return nil
}

func (m *MockAlertRepository) ListWithPagination(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	var all []*alert.Alert
	for _, a := range m.Alerts {
		if filter.RuleID != "" && a.RuleID != filter.RuleID {
			continue
		}
		if filter.RuleType != "" && a.RuleType != filter.RuleType {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		all = append(all, a)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *MockAlertRepository) HasOpen(ctx context.Context, ruleID, entityKey string) (bool, error) {
	for _, a := range m.Alerts {
		if a.RuleID == ruleID && a.EntityKey == entityKey && a.Status == alert.StatusOpen {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAlertRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range m.Alerts {
		counts[a.Status]++
	}
	return counts, nil
}
