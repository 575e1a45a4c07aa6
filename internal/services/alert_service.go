package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/alert"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/errors"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/metrics"
)

// AlertService implements alert.Service
type AlertService struct {
	repo   alert.Repository
	logger *logger.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(repo alert.Repository, log *logger.Logger) alert.Service {
	return &AlertService{
		repo:   repo,
		logger: log,
	}
}

// Record stores a fired alert unless an open one already exists for the same
// rule/entity pair. Returns nil when suppressed.
func (s *AlertService) Record(ctx context.Context, a *alert.Alert) (*alert.Alert, error) {
	open, err := s.repo.HasOpen(ctx, a.RuleID, a.EntityKey)
	if err != nil {
		return nil, err
	}
	if open {
		s.logger.WithFields(map[string]interface{}{
			"rule_id":    a.RuleID,
			"entity_key": a.EntityKey,
		}).Debug("Open alert exists, suppressing duplicate")
		return nil, nil
	}

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.Status = alert.StatusOpen
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.ErrorWithErr(err, "Failed to record alert")
		return nil, err
	}

	metrics.RecordAlertFired(string(a.RuleType))
	s.refreshOpenGauge(ctx)

	s.logger.WithFields(map[string]interface{}{
		"alert_id":   a.ID,
		"rule_id":    a.RuleID,
		"entity_key": a.EntityKey,
	}).Info("Alert recorded")

	return a, nil
}

// GetByID retrieves an alert by ID
func (s *AlertService) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus moves an alert between open/acknowledged/resolved
func (s *AlertService) UpdateStatus(ctx context.Context, id string, status string) error {
	switch status {
	case alert.StatusOpen, alert.StatusAcknowledged, alert.StatusResolved:
	default:
		return errors.ValidationError(fmt.Sprintf("unknown alert status: %s", status), nil)
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update alert status")
		return err
	}

	s.refreshOpenGauge(ctx)
	s.logger.WithFields(map[string]interface{}{
		"alert_id": id,
		"status":   status,
	}).Info("Alert status updated")

	return nil
}

// Delete removes an alert
func (s *AlertService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete alert")
		return err
	}
	s.refreshOpenGauge(ctx)
	return nil
}

// List retrieves alerts with filters and pagination
func (s *AlertService) List(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	return s.repo.ListWithPagination(ctx, filter, limit, offset)
}

// GetSummary gets alert counts by status
func (s *AlertService) GetSummary(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByStatus(ctx)
}

func (s *AlertService) refreshOpenGauge(ctx context.Context) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return
	}
	metrics.SetOpenAlerts(counts[alert.StatusOpen])
}
