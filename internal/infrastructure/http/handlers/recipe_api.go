package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/domain/recipe"
	"github.com/mealforge/mealforge/internal/infrastructure/http/middleware"
	"github.com/mealforge/mealforge/internal/ports/inbound"
	"github.com/mealforge/mealforge/pkg/errors"
)

// RecipeHandlers handles recipe generation and retrieval requests.
type RecipeHandlers struct {
	recipes inbound.RecipeService
	logger  *zap.Logger
}

func NewRecipeHandlers(recipes inbound.RecipeService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		recipes: recipes,
		logger:  logger,
	}
}

type generateRequest struct {
	Ingredients []string `json:"ingredients"`
}

// Generate handles POST /api/recipes/generate. Guests are allowed; a
// signed-in caller additionally gets a history entry.
func (h *RecipeHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, errors.NewBadRequestError("Invalid JSON payload"))
		return
	}

	result, err := h.recipes.Generate(r.Context(), inbound.GenerateCommand{
		Ingredients: req.Ingredients,
		Username:    middleware.UsernameFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get handles GET /api/recipes/{id}.
func (h *RecipeHandlers) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.recipes.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Update handles PUT /api/recipes/{id}.
func (h *RecipeHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var upd recipe.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, h.logger, errors.NewBadRequestError("Invalid JSON payload"))
		return
	}

	result, err := h.recipes.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
