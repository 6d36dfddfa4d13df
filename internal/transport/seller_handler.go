package transport

import (
	"errors"
	"net/http"

	"localmarket/internal/middleware"
	"localmarket/internal/repository"
	"localmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TopSellerLimit caps the featured-sellers list.
const TopSellerLimit = 5

// RegisterSellerRequest represents the seller registration payload
type RegisterSellerRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Description  string `json:"description" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	ContactPhone string `json:"contact_phone" validate:"required"`
	Location     string `json:"location" validate:"required"`
	ProfileImage string `json:"profile_image" validate:"omitempty,url"`
}

// SellerHandler handles HTTP requests for seller operations
type SellerHandler struct {
	sellers service.SellerService
	logger  *zap.Logger
}

// NewSellerHandler creates a new SellerHandler
func NewSellerHandler(sellers service.SellerService, logger *zap.Logger) *SellerHandler {
	return &SellerHandler{sellers: sellers, logger: logger}
}

// RegisterRoutes registers all seller routes
func (h *SellerHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/api/sellers/top", h.TopSellers)
	r.Get("/api/sellers/{id}", h.GetSeller)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/sellers", h.Register)
		r.Get("/api/sellers/me", h.GetOwnProfile)
	})
}

// Register handles seller registration
func (h *SellerHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	var req RegisterSellerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Seller registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	seller, err := h.sellers.Register(r.Context(), userID, service.SellerRegistrationInput{
		Name:         req.Name,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Location:     req.Location,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSellerAlreadyExists) {
			middleware.RespondWithError(w, http.StatusConflict, "seller already registered for this user")
			return
		}
		h.logger.Error("Seller registration failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to register seller")
		return
	}

	h.logger.Info("Seller registered",
		zap.String("seller_id", seller.ID.String()),
		zap.String("user_id", userID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, seller)
}

// GetSeller handles fetching a seller profile
func (h *SellerHandler) GetSeller(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid seller ID")
		return
	}

	seller, err := h.sellers.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "seller not found")
			return
		}
		h.logger.Error("Failed to load seller", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load seller")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, seller)
}

// GetOwnProfile handles fetching the signed-in user's seller profile
func (h *SellerHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	seller, err := h.sellers.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "no seller profile")
			return
		}
		h.logger.Error("Failed to load seller profile", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load seller profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, seller)
}

// TopSellers handles the featured sellers list
func (h *SellerHandler) TopSellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.sellers.TopSellers(r.Context(), TopSellerLimit)
	if err != nil {
		h.logger.Error("Failed to list top sellers", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list top sellers")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sellers)
}
