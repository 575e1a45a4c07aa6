package handlers

import (
	"net/http"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/ticket"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/utils"
)

// TicketHandler exposes read access to the ticket collection for the rule
// builder UI.
type TicketHandler struct {
	repo   ticket.Repository
	logger *logger.Logger
}

func NewTicketHandler(repo ticket.Repository, log *logger.Logger) *TicketHandler {
	return &TicketHandler{repo: repo, logger: log}
}

// List returns tickets, optionally filtered by status, client, type and
// assignee.
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ticket.Filter{
		Status:     ticket.Status(q.Get("status")),
		ClientName: q.Get("client_name"),
		Type:       q.Get("type"),
		AssignedTo: q.Get("assigned_to"),
	}

	tickets, err := h.repo.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "Failed to list tickets")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, tickets)
}

// Statuses returns the pipeline stages in order, for populating rule forms.
func (h *TicketHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, ticket.AllStatuses())
}
