package repository

import (
	"context"
	"database/sql"
	"fmt"

	"localmarket/internal/domain"

	"github.com/google/uuid"
)

// BadgeRepository defines the interface for product badge data access
type BadgeRepository interface {
	Attach(ctx context.Context, productID uuid.UUID, badge domain.BadgeType) error
	Exists(ctx context.Context, productID uuid.UUID, badge domain.BadgeType) (bool, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.BadgeType, error)
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}

type badgeRepository struct {
	db *sql.DB
}

// NewBadgeRepository creates a new instance of BadgeRepository
func NewBadgeRepository(db *sql.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

// Attach inserts a badge row for a product. A duplicate (product, badge_type)
// pair is silently ignored so repeated attachment stays a no-op.
func (r *badgeRepository) Attach(ctx context.Context, productID uuid.UUID, badge domain.BadgeType) error {
	query := `
		INSERT INTO product_badges (id, product_id, badge_type, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (product_id, badge_type) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), productID, badge)
	if err != nil {
		return fmt.Errorf("failed to attach badge: %w", err)
	}

	return nil
}

// Exists reports whether a product already carries the given badge
func (r *badgeRepository) Exists(ctx context.Context, productID uuid.UUID, badge domain.BadgeType) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM product_badges WHERE product_id = $1 AND badge_type = $2
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, productID, badge).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check badge existence: %w", err)
	}

	return exists, nil
}

// ListByProduct retrieves all badges attached to a product
func (r *badgeRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.BadgeType, error) {
	query := `
		SELECT badge_type
		FROM product_badges
		WHERE product_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	badges := []domain.BadgeType{}
	for rows.Next() {
		var badge domain.BadgeType
		if err := rows.Scan(&badge); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, badge)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating badges: %w", err)
	}

	return badges, nil
}

// DeleteByProduct removes every badge attached to a product. Product deletion
// runs this first to satisfy the referential cleanup order.
func (r *badgeRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	query := `DELETE FROM product_badges WHERE product_id = $1`

	if _, err := r.db.ExecContext(ctx, query, productID); err != nil {
		return fmt.Errorf("failed to delete product badges: %w", err)
	}

	return nil
}
