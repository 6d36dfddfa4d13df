package service

import (
	"context"

	"localmarket/internal/domain"
	"localmarket/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FavoriteService defines the favorites ledger operations. Every call takes
// the acting user explicitly; there is no ambient identity.
type FavoriteService interface {
	Add(ctx context.Context, productID, userID uuid.UUID) error
	Remove(ctx context.Context, productID, userID uuid.UUID) error
	IsFavorited(ctx context.Context, productID, userID uuid.UUID) (bool, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Product, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	badgeRepo    repository.BadgeRepository
	logger       *zap.Logger
}

// NewFavoriteService creates a new instance of FavoriteService
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, badgeRepo repository.BadgeRepository, logger *zap.Logger) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		badgeRepo:    badgeRepo,
		logger:       logger,
	}
}

// Add inserts the (product, user) membership. Adding twice is a no-op.
func (s *favoriteService) Add(ctx context.Context, productID, userID uuid.UUID) error {
	return s.favoriteRepo.Add(ctx, productID, userID)
}

// Remove deletes the membership. Removing a non-existent favorite is a no-op.
func (s *favoriteService) Remove(ctx context.Context, productID, userID uuid.UUID) error {
	return s.favoriteRepo.Remove(ctx, productID, userID)
}

// IsFavorited reports membership of the (product, user) pair
func (s *favoriteService) IsFavorited(ctx context.Context, productID, userID uuid.UUID) (bool, error) {
	return s.favoriteRepo.Exists(ctx, productID, userID)
}

// ListForUser retrieves the user's favorited products with their badge sets
func (s *favoriteService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Product, error) {
	products, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, product := range products {
		badges, err := s.badgeRepo.ListByProduct(ctx, product.ID)
		if err != nil {
			s.logger.Warn("Failed to load badges for favorite",
				zap.String("product_id", product.ID.String()),
				zap.Error(err),
			)
			continue
		}
		product.Badges = badges
	}

	return products, nil
}
