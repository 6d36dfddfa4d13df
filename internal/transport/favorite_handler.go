package transport

import (
	"net/http"

	"localmarket/internal/middleware"
	"localmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FavoriteHandler handles HTTP requests for the favorites ledger
type FavoriteHandler struct {
	favorites service.FavoriteService
	logger    *zap.Logger
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favorites service.FavoriteService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

// RegisterRoutes registers all favorites routes. Everything requires a
// signed-in user.
func (h *FavoriteHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/api/favorites", h.List)
		r.Put("/api/favorites/{productID}", h.Add)
		r.Delete("/api/favorites/{productID}", h.Remove)
		r.Get("/api/favorites/{productID}", h.Check)
	})
}

// Add handles favoriting a product. Favoriting twice is a no-op.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, productID, ok := h.ids(w, r)
	if !ok {
		return
	}

	if err := h.favorites.Add(r.Context(), productID, userID); err != nil {
		h.logger.Error("Failed to add favorite", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add favorite")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"favorited": true})
}

// Remove handles unfavoriting a product. Removing a favorite that does not
// exist is a no-op.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, productID, ok := h.ids(w, r)
	if !ok {
		return
	}

	if err := h.favorites.Remove(r.Context(), productID, userID); err != nil {
		h.logger.Error("Failed to remove favorite", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove favorite")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"favorited": false})
}

// Check reports whether the product is in the user's favorites
func (h *FavoriteHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, productID, ok := h.ids(w, r)
	if !ok {
		return
	}

	favorited, err := h.favorites.IsFavorited(r.Context(), productID, userID)
	if err != nil {
		h.logger.Error("Failed to check favorite", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to check favorite")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

// List handles fetching the user's favorited products
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	products, err := h.favorites.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list favorites", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *FavoriteHandler) ids(w http.ResponseWriter, r *http.Request) (userID, productID uuid.UUID, ok bool) {
	userID, ok = userIDFromContext(w, r, h.logger)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, productID, true
}
