package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"localmarket/internal/cache"
	"localmarket/internal/domain"
	"localmarket/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultProductImage backs listings created without a photo.
const DefaultProductImage = "https://images.unsplash.com/photo-1588345921523-c2dcdb7f1dcd?w=800&q=80"

var (
	ErrInvalidPrice = errors.New("price must not be negative")
)

// ProductDetail is a product with everything its detail view needs.
type ProductDetail struct {
	Product       *domain.Product  `json:"product"`
	Seller        *domain.Seller   `json:"seller"`
	Reviews       []*domain.Review `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
	ReviewCount   int              `json:"review_count"`
}

// NewProductInput carries the fields needed to create a listing.
type NewProductInput struct {
	Title       string
	Description string
	Price       float64
	Image       string
	Category    string
	Location    string
}

// ProductUpdateInput carries optional edits; nil fields are left unchanged.
type ProductUpdateInput struct {
	Title       *string
	Description *string
	Price       *float64
	Image       *string
	Category    *string
	Location    *string
}

// CatalogService defines product search and lifecycle operations
type CatalogService interface {
	Search(ctx context.Context, filter domain.SearchFilter) []*domain.Product
	RecordSearch(ctx context.Context, userID uuid.UUID, query string, category, location *string)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetail, error)
	AddProduct(ctx context.Context, sellerID uuid.UUID, input NewProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductUpdateInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	Categories(ctx context.Context) ([]string, error)
	Locations(ctx context.Context) ([]string, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	badgeRepo    repository.BadgeRepository
	reviewRepo   repository.ReviewRepository
	sellerRepo   repository.SellerRepository
	historyRepo  repository.SearchHistoryRepository
	taxonomyRepo repository.TaxonomyRepository
	catalogCache *cache.Catalog
	logger       *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	productRepo repository.ProductRepository,
	badgeRepo repository.BadgeRepository,
	reviewRepo repository.ReviewRepository,
	sellerRepo repository.SellerRepository,
	historyRepo repository.SearchHistoryRepository,
	taxonomyRepo repository.TaxonomyRepository,
	catalogCache *cache.Catalog,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		badgeRepo:    badgeRepo,
		reviewRepo:   reviewRepo,
		sellerRepo:   sellerRepo,
		historyRepo:  historyRepo,
		taxonomyRepo: taxonomyRepo,
		catalogCache: catalogCache,
		logger:       logger,
	}
}

// Search returns products matching the filter, newest first, each annotated
// with its badge set. A failing backend degrades to an empty result instead
// of surfacing an error: the caller renders "no results" and the failure is
// logged here.
func (s *catalogService) Search(ctx context.Context, filter domain.SearchFilter) []*domain.Product {
	cacheKey, _ := s.catalogCache.SearchKey(ctx, filter)
	if cached, ok := s.catalogCache.GetSearch(ctx, cacheKey); ok {
		return cached
	}

	products, err := s.productRepo.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Product search failed", zap.Error(err))
		return []*domain.Product{}
	}

	for _, product := range products {
		badges, err := s.badgeRepo.ListByProduct(ctx, product.ID)
		if err != nil {
			// A product without its badges is still worth showing.
			s.logger.Warn("Failed to load product badges",
				zap.String("product_id", product.ID.String()),
				zap.Error(err),
			)
			continue
		}
		product.Badges = badges
	}

	s.catalogCache.SetSearch(ctx, cacheKey, products)

	return products
}

// RecordSearch appends a search to the user's history. History powers the
// recommendation heuristic only; a failed append is logged and dropped.
func (s *catalogService) RecordSearch(ctx context.Context, userID uuid.UUID, query string, category, location *string) {
	entry := &domain.SearchHistoryEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Query:     query,
		CreatedAt: time.Now(),
	}
	if category != nil {
		entry.Category = *category
	}
	if location != nil {
		entry.Location = *location
	}

	if err := s.historyRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("Failed to record search history",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

// GetProduct retrieves a product detail view: the product, its seller, its
// badges, its reviews and a read-time average rating.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetail, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	badges, err := s.badgeRepo.ListByProduct(ctx, id)
	if err != nil {
		s.logger.Warn("Failed to load product badges", zap.String("product_id", id.String()), zap.Error(err))
	} else {
		product.Badges = badges
	}

	seller, err := s.sellerRepo.FindByID(ctx, product.SellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product seller: %w", err)
	}

	reviews, err := s.reviewRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product reviews: %w", err)
	}

	avg, count, err := s.reviewRepo.AverageRating(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ProductDetail{
		Product:       product,
		Seller:        seller,
		Reviews:       reviews,
		AverageRating: avg,
		ReviewCount:   count,
	}, nil
}

// AddProduct creates a listing for a seller and attaches the
// "recently-added" badge. The badge never expires; only deletion removes it.
// A failed badge insert does not undo the listing.
func (s *catalogService) AddProduct(ctx context.Context, sellerID uuid.UUID, input NewProductInput) (*domain.Product, error) {
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}

	image := input.Image
	if image == "" {
		image = DefaultProductImage
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Image:       image,
		Category:    input.Category,
		Location:    input.Location,
		SellerID:    sellerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	if err := s.badgeRepo.Attach(ctx, product.ID, domain.BadgeRecentlyAdded); err != nil {
		s.logger.Error("Failed to attach recently-added badge",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	} else {
		product.Badges = []domain.BadgeType{domain.BadgeRecentlyAdded}
	}

	s.catalogCache.InvalidateSearches(ctx)

	return product, nil
}

// UpdateProduct applies the provided edits to a listing
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductUpdateInput) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, ErrInvalidPrice
		}
		product.Price = *input.Price
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Location != nil {
		product.Location = *input.Location
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.catalogCache.InvalidateSearches(ctx)

	return product, nil
}

// DeleteProduct removes a listing. Badges reference products without a
// cascade, so they are removed first.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.badgeRepo.DeleteByProduct(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.catalogCache.InvalidateSearches(ctx)

	return nil
}

// Categories retrieves the category list, read through the cache
func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	return s.names(ctx, "categories", s.taxonomyRepo.ListCategories)
}

// Locations retrieves the location list, read through the cache
func (s *catalogService) Locations(ctx context.Context) ([]string, error) {
	return s.names(ctx, "locations", s.taxonomyRepo.ListLocations)
}

func (s *catalogService) names(ctx context.Context, kind string, load func(context.Context) ([]string, error)) ([]string, error) {
	if cached, ok := s.catalogCache.GetNames(ctx, kind); ok {
		return cached, nil
	}

	names, err := load(ctx)
	if err != nil {
		return nil, err
	}

	s.catalogCache.SetNames(ctx, kind, names)

	return names, nil
}
