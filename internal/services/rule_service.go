package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/errors"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
)

// RuleService implements rule.Service
type RuleService struct {
	repo   rule.Repository
	logger *logger.Logger

	mu   sync.Mutex
	subs map[int]chan rule.Change
	next int
}

// NewRuleService creates a new rule service
func NewRuleService(repo rule.Repository, log *logger.Logger) rule.Service {
	return &RuleService{
		repo:   repo,
		logger: log,
		subs:   make(map[int]chan rule.Change),
	}
}

// Create validates and stores a new rule
func (s *RuleService) Create(ctx context.Context, r *rule.Rule) (string, error) {
	if err := r.Validate(); err != nil {
		return "", errors.ValidationError(err.Error(), nil)
	}

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	if err := s.repo.Create(ctx, r); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create rule")
		return "", err
	}

	s.logger.WithFields(map[string]interface{}{
		"rule_id":   r.ID,
		"rule_type": r.Type,
		"enabled":   r.Enabled,
	}).Info("Rule created")

	s.publish(rule.Change{Op: rule.ChangeCreated, RuleID: r.ID, Rule: r})
	return r.ID, nil
}

// GetByID retrieves a rule by ID
func (s *RuleService) GetByID(ctx context.Context, id string) (*rule.Rule, error) {
	return s.repo.GetByID(ctx, id)
}

// Update validates and replaces a stored rule
func (s *RuleService) Update(ctx context.Context, r *rule.Rule) error {
	if err := r.Validate(); err != nil {
		return errors.ValidationError(err.Error(), nil)
	}

	existing, err := s.repo.GetByID(ctx, r.ID)
	if err != nil {
		return err
	}
	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, r); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update rule")
		return err
	}

	s.logger.With("rule_id", r.ID).Info("Rule updated")
	s.publish(rule.Change{Op: rule.ChangeUpdated, RuleID: r.ID, Rule: r})
	return nil
}

// Delete removes a rule
func (s *RuleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete rule")
		return err
	}

	s.logger.With("rule_id", id).Info("Rule deleted")
	s.publish(rule.Change{Op: rule.ChangeDeleted, RuleID: id})
	return nil
}

// SetEnabled toggles a rule's enabled flag
func (s *RuleService) SetEnabled(ctx context.Context, id string, enabled bool) error {
	if err := s.repo.SetEnabled(ctx, id, enabled); err != nil {
		s.logger.ErrorWithErr(err, "Failed to toggle rule")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"rule_id": id,
		"enabled": enabled,
	}).Info("Rule toggled")

	r, err := s.repo.GetByID(ctx, id)
	if err == nil {
		s.publish(rule.Change{Op: rule.ChangeUpdated, RuleID: id, Rule: r})
	}
	return nil
}

// List retrieves rules matching the filter
func (s *RuleService) List(ctx context.Context, filter rule.Filter) ([]*rule.Rule, error) {
	return s.repo.List(ctx, filter)
}

// ListEnabled retrieves all enabled rules
func (s *RuleService) ListEnabled(ctx context.Context) ([]*rule.Rule, error) {
	return s.repo.ListEnabled(ctx)
}

// Subscribe registers a change listener. The channel is buffered; slow
// consumers drop changes rather than block mutations.
func (s *RuleService) Subscribe() (<-chan rule.Change, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	ch := make(chan rule.Change, 16)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (s *RuleService) publish(c rule.Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- c:
		default:
		}
	}
}
