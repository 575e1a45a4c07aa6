package client

import (
	"context"
	"net/http"
	"net/url"
)

// TicketService handles ticket API calls
type TicketService struct {
	client *Client
}

// TicketListOptions contains options for listing tickets
type TicketListOptions struct {
	Status     string
	ClientName string
	Type       string
	AssignedTo string
}

// List retrieves tickets matching the options
func (s *TicketService) List(ctx context.Context, opts *TicketListOptions) ([]Ticket, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
		if opts.ClientName != "" {
			query.Set("client_name", opts.ClientName)
		}
		if opts.Type != "" {
			query.Set("type", opts.Type)
		}
		if opts.AssignedTo != "" {
			query.Set("assigned_to", opts.AssignedTo)
		}
	}

	path := "/api/v1/tickets"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var tickets []Ticket
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Statuses returns the pipeline stages in order
func (s *TicketService) Statuses(ctx context.Context) ([]string, error) {
	var statuses []string
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/tickets/statuses", nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}
