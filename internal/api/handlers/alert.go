package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/api/dto"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/alert"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/errors"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/utils"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/validator"
)

type AlertHandler struct {
	service   alert.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewAlertHandler(service alert.Service, log *logger.Logger, val *validator.Validator) *AlertHandler {
	return &AlertHandler{service: service, logger: log, validator: val}
}

// List returns fired alerts with pagination and filtering.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)

	filter := alert.Filter{
		RuleID:   r.URL.Query().Get("rule_id"),
		RuleType: rule.Type(r.URL.Query().Get("rule_type")),
		Status:   r.URL.Query().Get("status"),
	}

	alerts, total, err := h.service.List(r.Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		writeServiceError(w, err, "Failed to list alerts")
		return
	}

	dtos := make([]dto.AlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = dto.FromAlert(a)
	}
	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, params.Page, params.PageSize, total))
}

// Get returns a single alert by ID.
func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get alert")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.FromAlert(a))
}

// UpdateStatus moves an alert between open, acknowledged and resolved.
func (h *AlertHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateAlertStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if errs := h.validator.Validate(req); errs != nil {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeServiceError(w, err, "Failed to update alert status")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": req.Status,
	})
}

// Delete removes an alert.
func (h *AlertHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete alert")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Alert deleted", nil)
}

// Summary returns alert counts grouped by status.
func (h *AlertHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to summarize alerts")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, summary)
}
