package repository

import (
	"context"
	"database/sql"
	"fmt"

	"localmarket/internal/domain"

	"github.com/google/uuid"
)

// FavoriteRepository defines the interface for favorite data access
type FavoriteRepository interface {
	Add(ctx context.Context, productID, userID uuid.UUID) error
	Remove(ctx context.Context, productID, userID uuid.UUID) error
	Exists(ctx context.Context, productID, userID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Product, error)
}

type favoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new instance of FavoriteRepository
func NewFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts a favorite membership row. Adding an existing favorite is a
// no-op rather than a unique-violation error.
func (r *favoriteRepository) Add(ctx context.Context, productID, userID uuid.UUID) error {
	query := `
		INSERT INTO favorites (id, product_id, user_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (product_id, user_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, uuid.New(), productID, userID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

// Remove deletes a favorite by exact key match. Removing a favorite that does
// not exist is a no-op.
func (r *favoriteRepository) Remove(ctx context.Context, productID, userID uuid.UUID) error {
	query := `DELETE FROM favorites WHERE product_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, productID, userID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}

// Exists reports whether the (product, user) pair is favorited
func (r *favoriteRepository) Exists(ctx context.Context, productID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM favorites WHERE product_id = $1 AND user_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, productID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check favorite existence: %w", err)
	}

	return exists, nil
}

// ListByUser retrieves the products a user has favorited, newest favorite first
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Product, error) {
	query := `
		SELECT p.id, p.title, p.description, p.price, p.image, p.category, p.location,
		       p.seller_id, s.name, p.created_at, p.updated_at
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		JOIN sellers s ON s.id = p.seller_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Title,
			&product.Description,
			&product.Price,
			&product.Image,
			&product.Category,
			&product.Location,
			&product.SellerID,
			&product.SellerName,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return products, nil
}
