package service

import (
	"context"
	"time"

	"localmarket/internal/domain"
	"localmarket/internal/repository"

	"github.com/google/uuid"
)

// SellerRegistrationInput carries the fields a seller registers with.
type SellerRegistrationInput struct {
	Name         string
	Description  string
	ContactEmail string
	ContactPhone string
	Location     string
	ProfileImage string
}

// SellerService defines seller profile operations
type SellerService interface {
	Register(ctx context.Context, userID uuid.UUID, input SellerRegistrationInput) (*domain.Seller, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Seller, error)
	TopSellers(ctx context.Context, limit int) ([]*domain.Seller, error)
}

type sellerService struct {
	sellerRepo repository.SellerRepository
}

// NewSellerService creates a new instance of SellerService
func NewSellerService(sellerRepo repository.SellerRepository) SellerService {
	return &sellerService{sellerRepo: sellerRepo}
}

// Register creates a seller profile owned by the user. Ratings are seeded at
// 5.0 and never recomputed; a second registration for the same user surfaces
// repository.ErrSellerAlreadyExists.
func (s *sellerService) Register(ctx context.Context, userID uuid.UUID, input SellerRegistrationInput) (*domain.Seller, error) {
	seller := &domain.Seller{
		ID:           uuid.New(),
		Name:         input.Name,
		Description:  input.Description,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Location:     input.Location,
		ProfileImage: input.ProfileImage,
		Rating:       domain.DefaultSellerRating,
		UserID:       userID,
		CreatedAt:    time.Now(),
	}

	if err := s.sellerRepo.Create(ctx, seller); err != nil {
		return nil, err
	}

	return seller, nil
}

// GetByID retrieves a seller profile
func (s *sellerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	return s.sellerRepo.FindByID(ctx, id)
}

// GetByUserID retrieves the seller profile owned by a user, if any
func (s *sellerService) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Seller, error) {
	return s.sellerRepo.FindByUserID(ctx, userID)
}

// TopSellers retrieves the highest-rated sellers
func (s *sellerService) TopSellers(ctx context.Context, limit int) ([]*domain.Seller, error) {
	return s.sellerRepo.ListTop(ctx, limit)
}
