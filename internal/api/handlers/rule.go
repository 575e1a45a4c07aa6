package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/api/dto"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/rule"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/errors"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/utils"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/validator"
)

type RuleHandler struct {
	service   rule.Service
	evaluator rule.Evaluator
	logger    *logger.Logger
	validator *validator.Validator
}

func NewRuleHandler(service rule.Service, evaluator rule.Evaluator, log *logger.Logger, val *validator.Validator) *RuleHandler {
	return &RuleHandler{service: service, evaluator: evaluator, logger: log, validator: val}
}

// List returns rules, optionally filtered by type and enabled state.
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := rule.Filter{
		Type: rule.Type(r.URL.Query().Get("type")),
	}
	if v := r.URL.Query().Get("enabled"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("enabled must be true or false"))
			return
		}
		filter.Enabled = &enabled
	}

	rules, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "Failed to list rules")
		return
	}

	dtos := make([]dto.RuleDTO, len(rules))
	for i, rl := range rules {
		dtos[i] = dto.FromRule(rl)
	}
	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Get returns a single rule by ID.
func (h *RuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rl, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get rule")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.FromRule(rl))
}

// Create stores a new rule.
func (h *RuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if errs := h.validator.Validate(req); errs != nil {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	rl := &rule.Rule{
		Name:        req.Name,
		Description: req.Description,
		Type:        rule.Type(req.Type),
		Enabled:     enabled,
		Conditions:  req.Conditions,
	}

	id, err := h.service.Create(r.Context(), rl)
	if err != nil {
		writeServiceError(w, err, "Failed to create rule")
		return
	}

	rl.ID = id
	utils.WriteSuccess(w, http.StatusCreated, dto.FromRule(rl))
}

// Update replaces an existing rule.
func (h *RuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if errs := h.validator.Validate(req); errs != nil {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	rl := &rule.Rule{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Type:        rule.Type(req.Type),
		Enabled:     enabled,
		Conditions:  req.Conditions,
	}

	if err := h.service.Update(r.Context(), rl); err != nil {
		writeServiceError(w, err, "Failed to update rule")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.FromRule(rl))
}

// Delete removes a rule.
func (h *RuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete rule")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Rule deleted", nil)
}

// SetEnabled toggles a rule without touching its conditions.
func (h *RuleHandler) SetEnabled(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.SetEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if err := h.service.SetEnabled(r.Context(), id, req.Enabled); err != nil {
		writeServiceError(w, err, "Failed to toggle rule")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"enabled": req.Enabled,
	})
}

// Test evaluates a stored rule and returns its matches without firing alerts.
func (h *RuleHandler) Test(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rl, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get rule")
		return
	}

	result, err := h.evaluator.Test(r.Context(), rl)
	if err != nil {
		writeServiceError(w, err, "Failed to evaluate rule")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, result)
}

// TestAdhoc evaluates an unsaved rule definition, for previewing conditions
// before saving.
func (h *RuleHandler) TestAdhoc(w http.ResponseWriter, r *http.Request) {
	var req dto.TestRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if errs := h.validator.Validate(req); errs != nil {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	rl := &rule.Rule{
		Name:       "adhoc",
		Type:       rule.Type(req.Type),
		Conditions: req.Conditions,
	}
	if err := rl.Validate(); err != nil {
		utils.WriteError(w, errors.ValidationError(err.Error(), nil))
		return
	}

	result, err := h.evaluator.Test(r.Context(), rl)
	if err != nil {
		writeServiceError(w, err, "Failed to evaluate rule")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, result)
}

// Watch streams rule changes as server-sent events until the client goes
// away.
func (h *RuleHandler) Watch(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.WriteError(w, errors.Internal("Streaming not supported", nil))
		return
	}

	ch, cancel := h.service.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case change, ok := <-ch:
			if !ok {
				return
			}
			payload, err := json.Marshal(change)
			if err != nil {
				h.logger.ErrorWithErr(err, "Failed to encode rule change")
				continue
			}
			if _, err := w.Write([]byte("event: rule\ndata: " + string(payload) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
