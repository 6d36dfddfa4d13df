package service

import (
	"context"
	"errors"
	"time"

	"localmarket/internal/cache"
	"localmarket/internal/domain"
	"localmarket/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// ReviewService defines review submission and retrieval
type ReviewService interface {
	Submit(ctx context.Context, productID, userID uuid.UUID, rating int, comment string) (*domain.Review, error)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	badgeRepo    repository.BadgeRepository
	catalogCache *cache.Catalog
	logger       *zap.Logger
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, badgeRepo repository.BadgeRepository, catalogCache *cache.Catalog, logger *zap.Logger) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		badgeRepo:    badgeRepo,
		catalogCache: catalogCache,
		logger:       logger,
	}
}

// Submit stores a review and then re-derives the product's badge set. A
// 5-star review earns "top-rated" exactly once; lower ratings never add or
// remove it. Badge failures are logged and tolerated: the review is already
// accepted and is not rolled back.
func (s *reviewService) Submit(ctx context.Context, productID, userID uuid.UUID, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	review := &domain.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.applyBadgeRules(ctx, productID, review)

	return review, nil
}

func (s *reviewService) applyBadgeRules(ctx context.Context, productID uuid.UUID, review *domain.Review) {
	current, err := s.badgeRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to load badges for derivation",
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
		return
	}

	attached := false
	for _, badge := range MissingBadges(current, []*domain.Review{review}) {
		if err := s.badgeRepo.Attach(ctx, productID, badge); err != nil {
			s.logger.Error("Failed to attach derived badge",
				zap.String("product_id", productID.String()),
				zap.String("badge", string(badge)),
				zap.Error(err),
			)
			continue
		}
		attached = true
	}

	// Cached search results carry badge sets; a new badge orphans them.
	if attached {
		s.catalogCache.InvalidateSearches(ctx)
	}
}

// ListForProduct retrieves a product's reviews, newest first
func (s *reviewService) ListForProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}
