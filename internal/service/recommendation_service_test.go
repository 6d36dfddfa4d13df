package service

import (
	"context"
	"errors"
	"testing"

	"localmarket/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

func newTestRecommendationService(historyRepo *mockSearchHistoryRepository, catalog *mockCatalog) RecommendationService {
	logger, _ := zap.NewDevelopment()
	return NewRecommendationService(historyRepo, catalog, logger)
}

func historyEntry(userID uuid.UUID, category, location string) *domain.SearchHistoryEntry {
	return &domain.SearchHistoryEntry{
		ID:       uuid.New(),
		UserID:   userID,
		Category: category,
		Location: location,
	}
}

func TestRecommendUsesMostFrequentFacets(t *testing.T) {
	historyRepo := newMockSearchHistoryRepository()
	catalog := &mockCatalog{}
	service := newTestRecommendationService(historyRepo, catalog)
	userID := uuid.New()
	ctx := context.Background()

	// Electronics appears three times, Furniture twice; Downtown twice,
	// Riverside once.
	for _, e := range []*domain.SearchHistoryEntry{
		historyEntry(userID, "Electronics", "Downtown"),
		historyEntry(userID, "Furniture", "Riverside"),
		historyEntry(userID, "Electronics", "Downtown"),
		historyEntry(userID, "Furniture", ""),
		historyEntry(userID, "Electronics", ""),
	} {
		historyRepo.Create(ctx, e)
	}

	service.Recommend(ctx, userID)

	if catalog.lastFilter.Category == nil || *catalog.lastFilter.Category != "Electronics" {
		t.Errorf("category facet = %v, want Electronics", catalog.lastFilter.Category)
	}
	if catalog.lastFilter.Location == nil || *catalog.lastFilter.Location != "Downtown" {
		t.Errorf("location facet = %v, want Downtown", catalog.lastFilter.Location)
	}
}

func TestRecommendFallsBackOnEmptyHistory(t *testing.T) {
	historyRepo := newMockSearchHistoryRepository()
	catalog := &mockCatalog{}
	service := newTestRecommendationService(historyRepo, catalog)

	service.Recommend(context.Background(), uuid.New())

	if catalog.searches != 1 {
		t.Fatalf("expected exactly one fallback search, got %d", catalog.searches)
	}
	if catalog.lastFilter.HasCategory() || catalog.lastFilter.HasLocation() {
		t.Errorf("fallback search should be unfiltered, got %+v", catalog.lastFilter)
	}
}

func TestRecommendFallsBackWhenHistoryFetchFails(t *testing.T) {
	historyRepo := newMockSearchHistoryRepository()
	historyRepo.listErr = errors.New("history store down")
	catalog := &mockCatalog{}
	service := newTestRecommendationService(historyRepo, catalog)

	results := service.Recommend(context.Background(), uuid.New())

	if catalog.searches != 1 {
		t.Fatalf("expected fallback search despite history failure, got %d searches", catalog.searches)
	}
	if results == nil {
		t.Error("expected non-nil result slice")
	}
}

func TestRecommendSkipsEmptyFacetValues(t *testing.T) {
	historyRepo := newMockSearchHistoryRepository()
	catalog := &mockCatalog{}
	service := newTestRecommendationService(historyRepo, catalog)
	userID := uuid.New()
	ctx := context.Background()

	// Only query text was searched; no category or location facet ever set.
	historyRepo.Create(ctx, historyEntry(userID, "", ""))
	historyRepo.Create(ctx, historyEntry(userID, "", ""))

	service.Recommend(ctx, userID)

	if catalog.lastFilter.Category != nil || catalog.lastFilter.Location != nil {
		t.Errorf("facets should be absent when history has none, got %+v", catalog.lastFilter)
	}
}

func TestModeOfTieBreaksOnFirstToReachMax(t *testing.T) {
	// Both values occur twice; "Furniture" reaches count 2 first.
	mode, ok := modeOf([]string{"Furniture", "Electronics", "Furniture", "Electronics"})
	if !ok || mode != "Furniture" {
		t.Errorf("mode = %q, want Furniture", mode)
	}
}

func TestProperty_ModeOfReturnsAMaximallyFrequentValue(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("result frequency is maximal and deterministic", prop.ForAll(
		func(values []string) bool {
			mode, ok := modeOf(values)
			if len(values) == 0 {
				return !ok
			}
			if !ok {
				return false
			}

			counts := make(map[string]int)
			for _, v := range values {
				counts[v]++
			}
			max := 0
			for _, c := range counts {
				if c > max {
					max = c
				}
			}
			if counts[mode] != max {
				return false
			}

			// Same input, same answer.
			again, _ := modeOf(values)
			return again == mode
		},
		gen.SliceOf(gen.OneConstOf("Electronics", "Furniture", "Books", "Clothing")),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRecommendLimitsHistoryToWindow(t *testing.T) {
	historyRepo := newMockSearchHistoryRepository()
	catalog := &mockCatalog{}
	service := newTestRecommendationService(historyRepo, catalog)
	userID := uuid.New()
	ctx := context.Background()

	// 12 old Furniture searches, then 10 recent Electronics ones. Only the
	// newest 10 entries feed the heuristic.
	for i := 0; i < 12; i++ {
		historyRepo.Create(ctx, historyEntry(userID, "Furniture", ""))
	}
	for i := 0; i < 10; i++ {
		historyRepo.Create(ctx, historyEntry(userID, "Electronics", ""))
	}

	service.Recommend(ctx, userID)

	if catalog.lastFilter.Category == nil || *catalog.lastFilter.Category != "Electronics" {
		t.Errorf("category facet = %v, want Electronics from the recent window", catalog.lastFilter.Category)
	}
}
