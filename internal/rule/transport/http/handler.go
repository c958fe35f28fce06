package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"stockalerts/internal/api/dto"
	"stockalerts/internal/rule"
	"stockalerts/internal/rule/service"
)

type Handler struct {
	Service *service.RuleService
}

func NewHandler(s *service.RuleService) *Handler {
	return &Handler{Service: s}
}

// Create handles POST /users/{userID}/rules.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req dto.CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid JSON format: "+err.Error())
		return
	}
	if !h.validate(w, req) {
		return
	}

	direction, err := rule.ParseDirection(req.Direction)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Service.CreateRule(r.Context(), userID, req.Ticker, direction, req.Threshold, req.Enabled)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.jsonResponse(w, http.StatusCreated, dto.RuleResponseFrom(created))
}

// Update handles PUT /users/{userID}/rules/{ruleID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	ruleID := chi.URLParam(r, "ruleID")

	var req dto.UpdateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid JSON format: "+err.Error())
		return
	}
	if !h.validate(w, req) {
		return
	}

	patch := service.UpdatePatch{
		Ticker:    req.Ticker,
		Threshold: req.Threshold,
		Enabled:   req.Enabled,
	}
	if req.Direction != nil {
		direction, err := rule.ParseDirection(*req.Direction)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		patch.Direction = &direction
	}

	updated, err := h.Service.UpdateRule(r.Context(), userID, ruleID, patch)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, dto.RuleResponseFrom(updated))
}

// Delete handles DELETE /users/{userID}/rules/{ruleID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	ruleID := chi.URLParam(r, "ruleID")

	if err := h.Service.DeleteRule(r.Context(), userID, ruleID); err != nil {
		h.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /users/{userID}/rules/{ruleID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	ruleID := chi.URLParam(r, "ruleID")

	found, err := h.Service.GetRule(r.Context(), userID, ruleID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, dto.RuleResponseFrom(found))
}

// List handles GET /users/{userID}/rules.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	rules, err := h.Service.ListRules(r.Context(), userID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, responseList(rules))
}

// ListByTicker handles GET /tickers/{ticker}/{direction}/rules. This is the
// secondary-index read path for the notification scanner.
func (h *Handler) ListByTicker(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	direction, err := rule.ParseDirection(chi.URLParam(r, "direction"))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rules, err := h.Service.ListByTicker(r.Context(), ticker, direction)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, responseList(rules))
}

func responseList(rules []*rule.Rule) []dto.RuleResponse {
	resp := make([]dto.RuleResponse, 0, len(rules))
	for _, r := range rules {
		resp = append(resp, dto.RuleResponseFrom(r))
	}
	return resp
}

// validate runs struct validation and writes a 400 with joined field messages
// on failure. Returns false when the request was rejected.
func (h *Handler) validate(w http.ResponseWriter, req any) bool {
	err := dto.Validate.Struct(req)
	if err == nil {
		return true
	}

	errMessages := make([]string, 0)
	for _, err := range err.(validator.ValidationErrors) {
		field := strings.ToLower(err.Field())
		if err.Tag() == "required" {
			errMessages = append(errMessages, field+" is required")
		} else {
			errMessages = append(errMessages, field+" is invalid")
		}
	}
	h.errorResponse(w, http.StatusBadRequest, strings.Join(errMessages, "; "))
	return false
}

func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.errorResponse(w, http.StatusNotFound, "rule not found")
	case errors.Is(err, service.ErrValidation):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("rule request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, msg string) {
	h.jsonResponse(w, status, map[string]string{"error": msg})
}
