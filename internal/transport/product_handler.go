package transport

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"localmarket/internal/domain"
	"localmarket/internal/middleware"
	"localmarket/internal/repository"
	"localmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewProductRequest represents the listing creation payload
type NewProductRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Category    string  `json:"category" validate:"required"`
	Location    string  `json:"location" validate:"required"`
}

// UpdateProductRequest represents a partial listing edit
type UpdateProductRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Image       *string  `json:"image" validate:"omitempty,url"`
	Category    *string  `json:"category"`
	Location    *string  `json:"location"`
}

// NewReviewRequest represents the review submission payload
type NewReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// RecordSearchRequest represents the search history payload the UI sends
// alongside each search it runs for a signed-in user
type RecordSearchRequest struct {
	Query    string  `json:"query"`
	Category *string `json:"category"`
	Location *string `json:"location"`
}

// ProductHandler handles HTTP requests for catalog operations
type ProductHandler struct {
	catalog        service.CatalogService
	reviews        service.ReviewService
	recommendation service.RecommendationService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(
	catalog service.CatalogService,
	reviews service.ReviewService,
	recommendation service.RecommendationService,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		catalog:        catalog,
		reviews:        reviews,
		recommendation: recommendation,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, requireSeller func(http.Handler) http.Handler) {
	// Public routes
	r.Get("/api/products", h.Search)
	r.Get("/api/products/{id}", h.GetProduct)
	r.Get("/api/products/{id}/reviews", h.ListReviews)
	r.Get("/api/categories", h.ListCategories)
	r.Get("/api/locations", h.ListLocations)

	// Routes for signed-in users
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/products/{id}/reviews", h.SubmitReview)
		r.Post("/api/search-history", h.RecordSearch)
		r.Get("/api/recommendations", h.Recommend)
	})

	// Seller-only routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(requireSeller)
		r.Post("/api/products", h.CreateProduct)
		r.Put("/api/products/{id}", h.UpdateProduct)
		r.Delete("/api/products/{id}", h.DeleteProduct)
	})
}

// Search handles filtered product search. Every facet is optional; absent
// facets and "All *" sentinels match everything. Backend trouble surfaces as
// an empty list, never a 5xx.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	products := h.catalog.Search(r.Context(), filter)
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func filterFromQuery(r *http.Request) (domain.SearchFilter, error) {
	filter := domain.SearchFilter{}
	q := r.URL.Query()

	if v := q.Get("q"); v != "" {
		filter.Query = &v
	}
	if v := q.Get("category"); v != "" {
		filter.Category = &v
	}
	if v := q.Get("location"); v != "" {
		filter.Location = &v
	}
	if v := q.Get("seller_id"); v != "" {
		sellerID, err := uuid.Parse(v)
		if err != nil {
			return filter, errors.New("invalid seller_id")
		}
		filter.SellerID = &sellerID
	}

	minStr, maxStr := q.Get("price_min"), q.Get("price_max")
	if minStr != "" || maxStr != "" {
		// An absent bound leaves that side open.
		priceRange := domain.PriceRange{Min: 0, Max: math.MaxFloat64}
		var err error
		if minStr != "" {
			if priceRange.Min, err = strconv.ParseFloat(minStr, 64); err != nil {
				return filter, errors.New("invalid price_min")
			}
		}
		if maxStr != "" {
			if priceRange.Max, err = strconv.ParseFloat(maxStr, 64); err != nil {
				return filter, errors.New("invalid price_max")
			}
		}
		filter.PriceRange = &priceRange
	}

	return filter, nil
}

// GetProduct handles the product detail view
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	detail, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to load product detail", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, detail)
}

// CreateProduct handles listing creation by a seller
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	var req NewProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product creation validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.AddProduct(r.Context(), sellerID, service.NewProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Location:    req.Location,
	})
	if err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles listing edits by the owning seller
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if !h.ownsProduct(w, r, id, sellerID) {
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product update validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, service.ProductUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Location:    req.Location,
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		if errors.Is(err, service.ErrInvalidPrice) {
			middleware.RespondWithError(w, http.StatusBadRequest, "price must not be negative")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct handles listing removal by the owning seller
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if !h.ownsProduct(w, r, id, sellerID) {
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *ProductHandler) ownsProduct(w http.ResponseWriter, r *http.Request, productID, sellerID uuid.UUID) bool {
	detail, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return false
		}
		h.logger.Error("Failed to load product for ownership check", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load product")
		return false
	}

	if detail.Product.SellerID != sellerID {
		middleware.RespondWithError(w, http.StatusForbidden, "not your listing")
		return false
	}

	return true
}

// SubmitReview handles review submission by a signed-in user
func (h *ProductHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req NewReviewRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Review validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviews.Submit(r.Context(), productID, userID, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			middleware.RespondWithError(w, http.StatusBadRequest, "rating must be between 1 and 5")
			return
		}
		h.logger.Error("Failed to submit review", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit review")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, review)
}

// ListReviews handles fetching a product's reviews
func (h *ProductHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	reviews, err := h.reviews.ListForProduct(r.Context(), productID)
	if err != nil {
		h.logger.Error("Failed to list reviews", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reviews)
}

// RecordSearch appends one entry to the signed-in user's search history
func (h *ProductHandler) RecordSearch(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	var req RecordSearchRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.catalog.RecordSearch(r.Context(), userID, req.Query, req.Category, req.Location)
	middleware.RespondWithJSON(w, http.StatusAccepted, map[string]string{"message": "search recorded"})
}

// Recommend handles personalized product recommendations
func (h *ProductHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	products := h.recommendation.Recommend(r.Context(), userID)
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// ListCategories returns the category facet values with the match-all
// sentinel prepended
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	names, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, append([]string{domain.AllCategories}, names...))
}

// ListLocations returns the location facet values with the match-all
// sentinel prepended
func (h *ProductHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	names, err := h.catalog.Locations(r.Context())
	if err != nil {
		h.logger.Error("Failed to list locations", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list locations")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, append([]string{domain.AllLocations}, names...))
}
