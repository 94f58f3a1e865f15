package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cloo-solutions/chairside/internal/api"
	"github.com/cloo-solutions/chairside/internal/api/middleware"
	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/pagination"
	"github.com/cloo-solutions/chairside/internal/service"
)

type PreferenceService interface {
	ListFavorites(ctx context.Context, p *domain.Principal) ([]*domain.Favorite, error)
	AddFavorite(ctx context.Context, p *domain.Principal, input service.AddFavoriteInput) (*domain.Favorite, error)
	RemoveFavorite(ctx context.Context, p *domain.Principal, href string) error
	ListRecents(ctx context.Context, p *domain.Principal, cursor string, limit int) (*pagination.PageResult[*domain.RecentVisit], error)
}

type PreferenceHandler struct {
	svc PreferenceService
}

func NewPreferenceHandler(svc PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{svc: svc}
}

type FavoriteRequest struct {
	Href        string `json:"href"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type FavoriteResponse struct {
	Href        string `json:"href"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
	CreatedAt   string `json:"created_at"`
}

type RecentResponse struct {
	Href        string `json:"href"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	VisitedAt   string `json:"visited_at"`
}

func favoriteToResponse(f *domain.Favorite) *FavoriteResponse {
	return &FavoriteResponse{
		Href:        f.Href,
		Name:        f.Name,
		Description: f.Description,
		Position:    f.Position,
		CreatedAt:   f.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *PreferenceHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	favorites, err := h.svc.ListFavorites(r.Context(), principal)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	responses := make([]*FavoriteResponse, len(favorites))
	for i, f := range favorites {
		responses[i] = favoriteToResponse(f)
	}

	api.Success(w, http.StatusOK, responses)
}

func (h *PreferenceHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req FavoriteRequest
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

	favorite, err := h.svc.AddFavorite(r.Context(), principal, service.AddFavoriteInput{
		Href:        req.Href,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.Success(w, http.StatusOK, favoriteToResponse(favorite))
}

func (h *PreferenceHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	href := r.URL.Query().Get("href")
	if href == "" {
		api.Error(w, http.StatusBadRequest, "href is required")
		return
	}

	if err := h.svc.RemoveFavorite(r.Context(), principal, href); err != nil {
		api.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PreferenceHandler) ListRecents(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	page, err := h.svc.ListRecents(r.Context(), principal, r.URL.Query().Get("cursor"), limit)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	responses := make([]RecentResponse, len(page.Items))
	for i, v := range page.Items {
		responses[i] = RecentResponse{
			Href:        v.Href,
			Name:        v.Name,
			Description: v.Description,
			VisitedAt:   v.VisitedAt.UTC().Format(time.RFC3339),
		}
	}

	api.Success(w, http.StatusOK, ListResponse[RecentResponse]{
		Items:   responses,
		Cursor:  page.Cursor,
		HasMore: page.HasMore,
	})
}
