package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cloo-solutions/chairside/internal/api"
	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/pagination"
	"github.com/cloo-solutions/chairside/internal/service"
	"github.com/go-chi/chi/v5"
)

type AdminService interface {
	CreateShop(ctx context.Context, name string) (*domain.Shop, error)
	ListShops(ctx context.Context, cursor string, limit int) (*pagination.PageResult[*domain.Shop], error)
	CreateAPIKey(ctx context.Context, input service.CreateAPIKeyInput) (*service.IssuedAPIKey, error)
	ListAPIKeys(ctx context.Context, shopID, cursor string, limit int) (*pagination.PageResult[*domain.APIKey], error)
	RevokeAPIKey(ctx context.Context, keyID string) error
}

// AdminHandler serves operator endpoints for tenants and keys.
type AdminHandler struct {
	svc AdminService
}

func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

type CreateShopRequest struct {
	Name string `json:"name"`
}

type ShopResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type CreateAPIKeyRequest struct {
	ShopID  string `json:"shop_id"`
	UserRef string `json:"user_ref"`
	Role    string `json:"role"`
	Name    string `json:"name"`
}

type APIKeyResponse struct {
	ID        string `json:"id"`
	ShopID    string `json:"shop_id"`
	UserRef   string `json:"user_ref"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	Token     string `json:"token,omitempty"`
	CreatedAt string `json:"created_at"`
	RevokedAt string `json:"revoked_at,omitempty"`
}

type ListResponse[T any] struct {
	Items   []T    `json:"items"`
	Cursor  string `json:"cursor,omitempty"`
	HasMore bool   `json:"has_more"`
}

func shopToResponse(s *domain.Shop) ShopResponse {
	return ShopResponse{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func apiKeyToResponse(k *domain.APIKey) APIKeyResponse {
	resp := APIKeyResponse{
		ID:        k.ID,
		ShopID:    k.ShopID,
		UserRef:   k.UserRef,
		Role:      string(k.Role),
		Name:      k.Name,
		CreatedAt: k.CreatedAt.UTC().Format(time.RFC3339),
	}
	if k.RevokedAt != nil {
		resp.RevokedAt = k.RevokedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func (h *AdminHandler) CreateShop(w http.ResponseWriter, r *http.Request) {
	var req CreateShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		api.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	shop, err := h.svc.CreateShop(r.Context(), req.Name)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.Success(w, http.StatusCreated, shopToResponse(shop))
}

func (h *AdminHandler) ListShops(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	page, err := h.svc.ListShops(r.Context(), r.URL.Query().Get("cursor"), limit)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	items := make([]ShopResponse, len(page.Items))
	for i, s := range page.Items {
		items[i] = shopToResponse(s)
	}

	api.Success(w, http.StatusOK, ListResponse[ShopResponse]{Items: items, Cursor: page.Cursor, HasMore: page.HasMore})
}

func (h *AdminHandler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	var req CreateAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ShopID == "" {
		api.Error(w, http.StatusBadRequest, "shop_id is required")
		return
	}
	if req.UserRef == "" {
		api.Error(w, http.StatusBadRequest, "user_ref is required")
		return
	}
	if req.Role == "" {
		api.Error(w, http.StatusBadRequest, "role is required")
		return
	}
	if req.Name == "" {
		api.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	issued, err := h.svc.CreateAPIKey(r.Context(), service.CreateAPIKeyInput{
		ShopID:  req.ShopID,
		UserRef: req.UserRef,
		Role:    req.Role,
		Name:    req.Name,
	})
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	resp := apiKeyToResponse(issued.Key)
	resp.Token = issued.Token
	api.Success(w, http.StatusCreated, resp)
}

func (h *AdminHandler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	shopID := r.URL.Query().Get("shop_id")
	if shopID == "" {
		api.Error(w, http.StatusBadRequest, "shop_id is required")
		return
	}

	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	page, err := h.svc.ListAPIKeys(r.Context(), shopID, r.URL.Query().Get("cursor"), limit)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	items := make([]APIKeyResponse, len(page.Items))
	for i, k := range page.Items {
		items[i] = apiKeyToResponse(k)
	}

	api.Success(w, http.StatusOK, ListResponse[APIKeyResponse]{Items: items, Cursor: page.Cursor, HasMore: page.HasMore})
}

func (h *AdminHandler) RevokeAPIKey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.svc.RevokeAPIKey(r.Context(), id); err != nil {
		api.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		api.Error(w, http.StatusBadRequest, "invalid limit")
		return 0, false
	}
	return limit, true
}
