package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cloo-solutions/chairside/internal/api"
	"github.com/cloo-solutions/chairside/internal/api/middleware"
	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/palette"
	"github.com/cloo-solutions/chairside/internal/service"
)

type PaletteService interface {
	Search(ctx context.Context, input service.SearchInput) (*service.SearchOutput, error)
	RecordSelection(ctx context.Context, input service.SelectionInput) error
	Navigation(ctx context.Context, p *domain.Principal) ([]domain.NavItem, error)
	QuickActions(ctx context.Context, p *domain.Principal) ([]domain.QuickAction, error)
}

type PaletteHandler struct {
	svc PaletteService
}

func NewPaletteHandler(svc PaletteService) *PaletteHandler {
	return &PaletteHandler{svc: svc}
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type SelectionRequest struct {
	SearchID    string       `json:"search_id,omitempty"`
	Href        string       `json:"href"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Kind        palette.Kind `json:"kind"`
}

func (h *PaletteHandler) Search(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Limit < 0 {
		api.Error(w, http.StatusBadRequest, "limit must not be negative")
		return
	}

	output, err := h.svc.Search(r.Context(), service.SearchInput{
		Principal: principal,
		Query:     req.Query,
		Limit:     req.Limit,
	})
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.Success(w, http.StatusOK, output)
}

func (h *PaletteHandler) RecordSelection(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Href == "" {
		api.Error(w, http.StatusBadRequest, "href is required")
		return
	}
	if req.Name == "" {
		api.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	err := h.svc.RecordSelection(r.Context(), service.SelectionInput{
		Principal:   principal,
		SearchID:    req.SearchID,
		Href:        req.Href,
		Name:        req.Name,
		Description: req.Description,
		Kind:        req.Kind,
	})
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PaletteHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	nav, err := h.svc.Navigation(r.Context(), principal)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	if nav == nil {
		nav = []domain.NavItem{}
	}

	api.Success(w, http.StatusOK, nav)
}

func (h *PaletteHandler) QuickActions(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	actions, err := h.svc.QuickActions(r.Context(), principal)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	if actions == nil {
		actions = []domain.QuickAction{}
	}

	api.Success(w, http.StatusOK, actions)
}
