package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/domain/history"
	"github.com/mealforge/mealforge/internal/infrastructure/http/middleware"
	"github.com/mealforge/mealforge/internal/ports/inbound"
	"github.com/mealforge/mealforge/pkg/errors"
)

// HistoryHandlers handles history CRUD requests. All routes sit behind
// required authentication, so the username is always present.
type HistoryHandlers struct {
	histories inbound.HistoryService
	logger    *zap.Logger
}

func NewHistoryHandlers(histories inbound.HistoryService, logger *zap.Logger) *HistoryHandlers {
	return &HistoryHandlers{
		histories: histories,
		logger:    logger,
	}
}

type historyItemRequest struct {
	Link string `json:"link"`
	Text string `json:"text"`
}

// List handles GET /api/history.
func (h *HistoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.histories.List(r.Context(), middleware.UsernameFromContext(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/history/{id}.
func (h *HistoryHandlers) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.histories.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /api/history.
func (h *HistoryHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req historyItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, errors.NewBadRequestError("Invalid JSON payload"))
		return
	}

	item, err := h.histories.Create(r.Context(), &history.Item{
		UserID: middleware.UsernameFromContext(r.Context()),
		Link:   req.Link,
		Text:   req.Text,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/history/{id}.
func (h *HistoryHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var upd history.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, h.logger, errors.NewBadRequestError("Invalid JSON payload"))
		return
	}

	item, err := h.histories.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/history/{id}.
func (h *HistoryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.histories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
