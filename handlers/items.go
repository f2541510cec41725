// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ltungv/poll/auth"
	"github.com/ltungv/poll/cliparse"
	"github.com/ltungv/poll/middleware"
	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/service"
	"github.com/ltungv/poll/store"
)

// AdminKeyHeader carries the admin key for item administration
const AdminKeyHeader = "X-Admin-Key"

type ItemHandler struct {
	items *service.ItemService
	cfg   cliparse.Config
}

func NewItemHandler(items *service.ItemService, cfg cliparse.Config) *ItemHandler {
	return &ItemHandler{items: items, cfg: cfg}
}

// ListItems handles GET /items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		slog.Error("failed to list items", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// CreateItem handles POST /items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.CreateItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	item, err := h.items.Create(r.Context(), req.Title, req.Content)
	if errors.Is(err, service.ErrInvalidTitle) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if err != nil {
		slog.Error("failed to create item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateItemResponse{ItemID: item.ID})
}

// RetireItem handles POST /items/{id}/retire
func (h *ItemHandler) RetireItem(w http.ResponseWriter, r *http.Request) {
	h.setDone(w, r, true)
}

// RestoreItem handles POST /items/{id}/restore
func (h *ItemHandler) RestoreItem(w http.ResponseWriter, r *http.Request) {
	h.setDone(w, r, false)
}

func (h *ItemHandler) setDone(w http.ResponseWriter, r *http.Request, done bool) {
	itemID := r.PathValue("id")
	if itemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "item ID is required")
		return
	}

	if !h.requireAdmin(w, r) {
		return
	}

	err := h.items.SetDone(r.Context(), itemID, done)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		slog.Error("failed to update item", "error", err, "item_id", itemID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ItemStatusResponse{ItemID: itemID, Done: done})
}

func (h *ItemHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	adminKey := r.Header.Get(AdminKeyHeader)
	if adminKey == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, AdminKeyHeader+" header required")
		return false
	}

	if err := auth.ValidateAdminKey(auth.AdminScope, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}
