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
	ErrProductNotFound = errors.New("product not found")
)

// likeEscaper neutralizes LIKE metacharacters. Postgres treats backslash as
// the default escape character for LIKE and ILIKE.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, title, description, price, image, category, location, seller_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.Image,
		product.Category,
		product.Location,
		product.SellerID,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update updates an existing product in the database using parameterized queries
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET title = $2, description = $3, price = $4, image = $5,
		    category = $6, location = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.Image,
		product.Category,
		product.Location,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product from the database. Callers are expected to remove
// the product's badges first; the badge table references products without a
// cascade.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product with its seller's display name
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT p.id, p.title, p.description, p.price, p.image, p.category, p.location,
		       p.seller_id, s.name, p.created_at, p.updated_at
		FROM products p
		JOIN sellers s ON s.id = p.seller_id
		WHERE p.id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
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
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// Search retrieves products matching the filter, newest first. Each provided
// facet becomes one conjunctive predicate; a missing facet or a match-all
// sentinel contributes no predicate at all, which keeps this path
// result-equivalent to domain.SearchFilter.Matches over the full collection.
func (r *productRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Product, error) {
	// An inverted price range can never match. Skip the round trip.
	if filter.PriceRange != nil && filter.PriceRange.Empty() {
		return []*domain.Product{}, nil
	}

	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.HasQuery() {
		// The query text is a literal substring, so LIKE metacharacters in
		// it must not act as wildcards.
		escaped := likeEscaper.Replace(strings.TrimSpace(*filter.Query))
		pattern := "%" + escaped + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(p.title ILIKE $%d OR p.category ILIKE $%d OR s.name ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, pattern)
		argIndex++
	}

	if filter.HasCategory() {
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", argIndex))
		args = append(args, *filter.Category)
		argIndex++
	}

	if filter.HasLocation() {
		conditions = append(conditions, fmt.Sprintf("p.location = $%d", argIndex))
		args = append(args, *filter.Location)
		argIndex++
	}

	if filter.PriceRange != nil {
		conditions = append(conditions, fmt.Sprintf("p.price >= $%d AND p.price <= $%d", argIndex, argIndex+1))
		args = append(args, filter.PriceRange.Min, filter.PriceRange.Max)
		argIndex += 2
	}

	if filter.SellerID != nil {
		conditions = append(conditions, fmt.Sprintf("p.seller_id = $%d", argIndex))
		args = append(args, *filter.SellerID)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.title, p.description, p.price, p.image, p.category, p.location,
		       p.seller_id, s.name, p.created_at, p.updated_at
		FROM products p
		JOIN sellers s ON s.id = p.seller_id
		%s
		ORDER BY p.created_at DESC, p.id DESC
	`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
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
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
