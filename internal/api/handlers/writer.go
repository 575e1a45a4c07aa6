package handlers

import (
	"net/http"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/writer"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/utils"
)

// WriterHandler exposes the content team roster.
type WriterHandler struct {
	repo   writer.Repository
	logger *logger.Logger
}

func NewWriterHandler(repo writer.Repository, log *logger.Logger) *WriterHandler {
	return &WriterHandler{repo: repo, logger: log}
}

// List returns everyone with the writer or manager role.
func (h *WriterHandler) List(w http.ResponseWriter, r *http.Request) {
	team, err := h.repo.ListTeam(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to list writers")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, team)
}
