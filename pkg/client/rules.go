package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// RuleService handles alert rule API calls
type RuleService struct {
	client *Client
}

// CreateRuleRequest represents a request to create a rule
type CreateRuleRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type"`
	Enabled     *bool      `json:"enabled,omitempty"`
	Conditions  Conditions `json:"conditions"`
}

// RuleListOptions contains options for listing rules
type RuleListOptions struct {
	Type    string
	Enabled *bool
}

// List retrieves rules matching the options
func (s *RuleService) List(ctx context.Context, opts *RuleListOptions) ([]Rule, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Type != "" {
			query.Set("type", opts.Type)
		}
		if opts.Enabled != nil {
			query.Set("enabled", strconv.FormatBool(*opts.Enabled))
		}
	}

	path := "/api/v1/rules"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var rules []Rule
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// Get retrieves a rule by ID
func (s *RuleService) Get(ctx context.Context, id string) (*Rule, error) {
	var rule Rule
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/rules/"+id, nil, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// Create stores a new rule
func (s *RuleService) Create(ctx context.Context, req *CreateRuleRequest) (*Rule, error) {
	var rule Rule
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/rules", req, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// Update replaces a rule
func (s *RuleService) Update(ctx context.Context, id string, req *CreateRuleRequest) (*Rule, error) {
	var rule Rule
	if err := s.client.doRequest(ctx, http.MethodPut, "/api/v1/rules/"+id, req, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// Delete removes a rule
func (s *RuleService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, http.MethodDelete, "/api/v1/rules/"+id, nil, nil)
}

// SetEnabled toggles a rule
func (s *RuleService) SetEnabled(ctx context.Context, id string, enabled bool) error {
	body := map[string]bool{"enabled": enabled}
	return s.client.doRequest(ctx, http.MethodPatch, "/api/v1/rules/"+id+"/enabled", body, nil)
}

// Test evaluates a stored rule and returns its matches
func (s *RuleService) Test(ctx context.Context, id string) (*TestResult, error) {
	var result TestResult
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/rules/"+id+"/test", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TestAdhoc evaluates an unsaved rule definition
func (s *RuleService) TestAdhoc(ctx context.Context, ruleType string, conditions Conditions) (*TestResult, error) {
	body := map[string]interface{}{
		"type":       ruleType,
		"conditions": conditions,
	}
	var result TestResult
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/rules/test", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
