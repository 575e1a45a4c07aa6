package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// AlertService handles fired alert API calls
type AlertService struct {
	client *Client
}

// AlertListOptions contains options for listing alerts
type AlertListOptions struct {
	ListOptions
	RuleID   string
	RuleType string
	Status   string
}

// List retrieves a page of alerts
func (s *AlertService) List(ctx context.Context, opts *AlertListOptions) (*Page[Alert], error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.RuleID != "" {
			query.Set("rule_id", opts.RuleID)
		}
		if opts.RuleType != "" {
			query.Set("rule_type", opts.RuleType)
		}
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
	}

	path := "/api/v1/alerts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page Page[Alert]
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves an alert by ID
func (s *AlertService) Get(ctx context.Context, id string) (*Alert, error) {
	var alert Alert
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/alerts/"+id, nil, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// UpdateStatus moves an alert between open, acknowledged and resolved
func (s *AlertService) UpdateStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return s.client.doRequest(ctx, http.MethodPatch, "/api/v1/alerts/"+id+"/status", body, nil)
}

// Delete removes an alert
func (s *AlertService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, http.MethodDelete, "/api/v1/alerts/"+id, nil, nil)
}

// Summary returns alert counts by status
func (s *AlertService) Summary(ctx context.Context) (map[string]int, error) {
	var summary map[string]int
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/alerts/summary", nil, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}
