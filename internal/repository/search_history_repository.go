package repository

import (
	"context"
	"database/sql"
	"fmt"

	"localmarket/internal/domain"

	"github.com/google/uuid"
)

// SearchHistoryRepository defines the interface for search history data access
type SearchHistoryRepository interface {
	Create(ctx context.Context, entry *domain.SearchHistoryEntry) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.SearchHistoryEntry, error)
}

type searchHistoryRepository struct {
	db *sql.DB
}

// NewSearchHistoryRepository creates a new instance of SearchHistoryRepository
func NewSearchHistoryRepository(db *sql.DB) SearchHistoryRepository {
	return &searchHistoryRepository{db: db}
}

// Create appends a search history entry. The table is append-only.
func (r *searchHistoryRepository) Create(ctx context.Context, entry *domain.SearchHistoryEntry) error {
	query := `
		INSERT INTO search_history (id, user_id, query, category, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		entry.Query,
		entry.Category,
		entry.Location,
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create search history entry: %w", err)
	}

	return nil
}

// ListRecent retrieves the user's most recent search history entries,
// newest first
func (r *searchHistoryRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.SearchHistoryEntry, error) {
	query := `
		SELECT id, user_id, query, category, location, created_at
		FROM search_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list search history: %w", err)
	}
	defer rows.Close()

	entries := []*domain.SearchHistoryEntry{}
	for rows.Next() {
		entry := &domain.SearchHistoryEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Query,
			&entry.Category,
			&entry.Location,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search history: %w", err)
	}

	return entries, nil
}
