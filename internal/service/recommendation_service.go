package service

import (
	"context"

	"localmarket/internal/domain"
	"localmarket/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HistoryWindow is how many recent searches feed the recommendation
// heuristic.
const HistoryWindow = 10

// RecommendationService suggests products from a user's search history
type RecommendationService interface {
	Recommend(ctx context.Context, userID uuid.UUID) []*domain.Product
}

type recommendationService struct {
	historyRepo repository.SearchHistoryRepository
	catalog     CatalogService
	logger      *zap.Logger
}

// NewRecommendationService creates a new instance of RecommendationService
func NewRecommendationService(historyRepo repository.SearchHistoryRepository, catalog CatalogService, logger *zap.Logger) RecommendationService {
	return &recommendationService{
		historyRepo: historyRepo,
		catalog:     catalog,
		logger:      logger,
	}
}

// Recommend searches with the most frequent category and location from the
// user's recent history. With no usable history, or if the history fetch
// fails, it falls back to an unfiltered search.
func (s *recommendationService) Recommend(ctx context.Context, userID uuid.UUID) []*domain.Product {
	entries, err := s.historyRepo.ListRecent(ctx, userID, HistoryWindow)
	if err != nil {
		s.logger.Warn("Failed to fetch search history, falling back to unfiltered search",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		entries = nil
	}

	if len(entries) == 0 {
		all := domain.AllCategories
		return s.catalog.Search(ctx, domain.SearchFilter{Category: &all})
	}

	categories := make([]string, 0, len(entries))
	locations := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Category != "" {
			categories = append(categories, entry.Category)
		}
		if entry.Location != "" {
			locations = append(locations, entry.Location)
		}
	}

	filter := domain.SearchFilter{}
	if category, ok := modeOf(categories); ok {
		filter.Category = &category
	}
	if location, ok := modeOf(locations); ok {
		filter.Location = &location
	}

	return s.catalog.Search(ctx, filter)
}

// modeOf returns the most frequent value. Ties go to the first value that
// reaches the maximum count in a single left-to-right scan, so the result is
// stable for identical input order.
func modeOf(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}

	counts := make(map[string]int, len(values))
	best := ""
	bestCount := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}

	return best, true
}
