package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"localmarket/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrSellerNotFound      = errors.New("seller not found")
	ErrSellerAlreadyExists = errors.New("seller already registered for this user")
)

// SellerRepository defines the interface for seller data access
type SellerRepository interface {
	Create(ctx context.Context, seller *domain.Seller) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Seller, error)
	ListTop(ctx context.Context, limit int) ([]*domain.Seller, error)
}

type sellerRepository struct {
	db *sql.DB
}

// NewSellerRepository creates a new instance of SellerRepository
func NewSellerRepository(db *sql.DB) SellerRepository {
	return &sellerRepository{db: db}
}

// Create inserts a new seller into the database using parameterized queries
func (r *sellerRepository) Create(ctx context.Context, seller *domain.Seller) error {
	query := `
		INSERT INTO sellers (id, name, description, contact_email, contact_phone, location, profile_image, rating, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		seller.ID,
		seller.Name,
		seller.Description,
		seller.ContactEmail,
		seller.ContactPhone,
		seller.Location,
		seller.ProfileImage,
		seller.Rating,
		seller.UserID,
		seller.CreatedAt,
	)

	if err != nil {
		// Unique constraint on user_id enforces one seller per user
		if strings.Contains(err.Error(), "sellers_user_id_key") {
			return ErrSellerAlreadyExists
		}
		return fmt.Errorf("failed to create seller: %w", err)
	}

	return nil
}

// FindByID retrieves a seller by ID using parameterized queries
func (r *sellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	return r.findBy(ctx, "id", id)
}

// FindByUserID retrieves the seller profile owned by a user, if any
func (r *sellerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Seller, error) {
	return r.findBy(ctx, "user_id", userID)
}

func (r *sellerRepository) findBy(ctx context.Context, column string, value uuid.UUID) (*domain.Seller, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, contact_email, contact_phone, location, profile_image, rating, user_id, created_at
		FROM sellers
		WHERE %s = $1
	`, column)

	seller := &domain.Seller{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&seller.ID,
		&seller.Name,
		&seller.Description,
		&seller.ContactEmail,
		&seller.ContactPhone,
		&seller.Location,
		&seller.ProfileImage,
		&seller.Rating,
		&seller.UserID,
		&seller.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSellerNotFound
		}
		return nil, fmt.Errorf("failed to find seller by %s: %w", column, err)
	}

	return seller, nil
}

// ListTop retrieves the highest-rated sellers
func (r *sellerRepository) ListTop(ctx context.Context, limit int) ([]*domain.Seller, error) {
	query := `
		SELECT id, name, description, contact_email, contact_phone, location, profile_image, rating, user_id, created_at
		FROM sellers
		ORDER BY rating DESC, created_at ASC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top sellers: %w", err)
	}
	defer rows.Close()

	sellers := []*domain.Seller{}
	for rows.Next() {
		seller := &domain.Seller{}
		err := rows.Scan(
			&seller.ID,
			&seller.Name,
			&seller.Description,
			&seller.ContactEmail,
			&seller.ContactPhone,
			&seller.Location,
			&seller.ProfileImage,
			&seller.Rating,
			&seller.UserID,
			&seller.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seller: %w", err)
		}
		sellers = append(sellers, seller)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sellers: %w", err)
	}

	return sellers, nil
}
