package handlers

import (
	"net/http"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/client"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/utils"
)

// ClientHandler exposes the client roster.
type ClientHandler struct {
	repo   client.Repository
	logger *logger.Logger
}

func NewClientHandler(repo client.Repository, log *logger.Logger) *ClientHandler {
	return &ClientHandler{repo: repo, logger: log}
}

// List returns all formally created clients. Clients that exist only as a
// name on tickets are not listed here; the evaluator still covers them.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.repo.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to list clients")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, clients)
}
