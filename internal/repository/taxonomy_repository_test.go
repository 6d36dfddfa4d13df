package repository

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
)

func TestTaxonomyListsAreAlphabetical(t *testing.T) {
	repo := NewTaxonomyRepository(testDB)
	ctx := context.Background()

	testDB.Exec("DELETE FROM categories")
	testDB.Exec("DELETE FROM locations")
	for _, name := range []string{"Furniture", "Books", "Electronics"} {
		testDB.Exec("INSERT INTO categories (id, name) VALUES ($1, $2)", uuid.New(), name)
	}
	for _, name := range []string{"Westside", "Downtown"} {
		testDB.Exec("INSERT INTO locations (id, name) VALUES ($1, $2)", uuid.New(), name)
	}

	categories, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 3 || !sort.StringsAreSorted(categories) {
		t.Errorf("categories = %v, want sorted", categories)
	}

	locations, err := repo.ListLocations(ctx)
	if err != nil {
		t.Fatalf("ListLocations failed: %v", err)
	}
	if len(locations) != 2 || !sort.StringsAreSorted(locations) {
		t.Errorf("locations = %v, want sorted", locations)
	}
}
