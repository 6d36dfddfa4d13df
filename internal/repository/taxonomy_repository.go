package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// TaxonomyRepository defines the interface for category and location lookups.
// Both lists are small, curated, and read far more often than they change.
type TaxonomyRepository interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListLocations(ctx context.Context) ([]string, error)
}

type taxonomyRepository struct {
	db *sql.DB
}

// NewTaxonomyRepository creates a new instance of TaxonomyRepository
func NewTaxonomyRepository(db *sql.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

// ListCategories retrieves all category names in alphabetical order
func (r *taxonomyRepository) ListCategories(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, "categories")
}

// ListLocations retrieves all location names in alphabetical order
func (r *taxonomyRepository) ListLocations(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, "locations")
}

func (r *taxonomyRepository) listNames(ctx context.Context, table string) ([]string, error) {
	query := fmt.Sprintf(`SELECT name FROM %s ORDER BY name ASC`, table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan %s name: %w", table, err)
		}
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}

	return names, nil
}
