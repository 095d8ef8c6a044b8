package food

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"

	"github.com/karahanbuhan/besinveri/internal/db"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	conn.SetMaxOpenConns(1)
	if err := db.InitSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return NewSQLiteRepository(conn)
}

func testFood(description string) *Food {
	return &Food{
		Slug:        Slugify(description),
		Description: description,
		Verified:    true,
		ImageURL:    "https://besinveri.com/static/" + Slugify(description) + ".webp",
		Source:      "TÜRKOMP",
		Tags:        []string{"a", "b"},
		Allergens:   []string{"nuts"},
		Servings:    map[string]float64{"100g": 100.0},
		Energy:      52.0,
		Protein:     0.3,
	}
}

func foodCount(t *testing.T, r *SQLiteRepository) int {
	t.Helper()
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		t.Fatalf("count foods: %v", err)
	}
	return n
}

func TestInsert_RoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	inserted := testFood("Karpuz")
	if err := repo.Insert(ctx, inserted); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if inserted.ID == 0 {
		t.Errorf("expected store-assigned id")
	}

	got, err := repo.GetBySlug(ctx, "karpuz")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}

	if got.Description != "Karpuz" {
		t.Errorf("expected description Karpuz, got %q", got.Description)
	}
	if got.ImageURL != inserted.ImageURL {
		t.Errorf("expected image url %q, got %q", inserted.ImageURL, got.ImageURL)
	}
	if got.Source != "TÜRKOMP" {
		t.Errorf("expected source TÜRKOMP, got %q", got.Source)
	}
	if got.Energy != 52.0 {
		t.Errorf("expected energy 52, got %v", got.Energy)
	}

	// Tags and allergens are sets; compare order-insensitively.
	sort.Strings(got.Tags)
	if len(got.Tags) != 2 || got.Tags[0] != "a" || got.Tags[1] != "b" {
		t.Errorf("expected tags [a b], got %v", got.Tags)
	}
	if len(got.Allergens) != 1 || got.Allergens[0] != "nuts" {
		t.Errorf("expected allergens [nuts], got %v", got.Allergens)
	}
	if len(got.Servings) != 1 || got.Servings["100g"] != 100.0 {
		t.Errorf("expected servings map[100g:100], got %v", got.Servings)
	}
}

func TestInsert_DuplicateDescription(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, testFood("Makarna")); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	err := repo.Insert(ctx, testFood("Makarna"))
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	if n := foodCount(t, repo); n != 1 {
		t.Errorf("expected exactly 1 food row, got %d", n)
	}
}

func TestInsert_CanonicalizesTagCase(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := testFood("Elma")
	first.Tags = []string{"Meyve"}
	second := testFood("Armut")
	second.Tags = []string{"meyve"}

	if err := repo.Insert(ctx, first); err != nil {
		t.Fatalf("insert first: %v", err)
	}
	if err := repo.Insert(ctx, second); err != nil {
		t.Fatalf("insert second: %v", err)
	}

	tags, err := repo.ListTags(ctx)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}

	found := 0
	for _, tag := range tags {
		if tag == "meyve" {
			found++
		}
		if tag == "Meyve" {
			t.Errorf("uppercase tag leaked into the store")
		}
	}
	if found != 1 {
		t.Errorf("expected a single canonical meyve tag, got tags %v", tags)
	}
}

func TestGetBySlug_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetBySlug(context.Background(), "does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListVerifiedSlugs_ExcludesUnverified(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	verified := testFood("Karpuz")
	unverified := testFood("Kavun")
	unverified.Verified = false

	if err := repo.Insert(ctx, verified); err != nil {
		t.Fatalf("insert verified: %v", err)
	}
	if err := repo.Insert(ctx, unverified); err != nil {
		t.Fatalf("insert unverified: %v", err)
	}

	slugs, err := repo.ListVerifiedSlugs(ctx)
	if err != nil {
		t.Fatalf("list verified slugs: %v", err)
	}
	if len(slugs) != 1 || slugs[0] != "karpuz" {
		t.Errorf("expected only [karpuz], got %v", slugs)
	}

	// Unverified foods stay reachable directly.
	if _, err := repo.GetBySlug(ctx, "kavun"); err != nil {
		t.Errorf("expected unverified food to be fetchable by slug, got %v", err)
	}
}

func TestSearchByDescription(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, description := range []string{"Karpuz", "Portakal", "Makarna", "Elma"} {
		if err := repo.Insert(ctx, testFood(description)); err != nil {
			t.Fatalf("insert %s: %v", description, err)
		}
	}

	foods, err := repo.SearchByDescription(ctx, "KA", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(foods) != 3 {
		t.Fatalf("expected 3 case-insensitive matches, got %d", len(foods))
	}

	limited, err := repo.SearchByDescription(ctx, "ka", 2)
	if err != nil {
		t.Fatalf("limited search: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected limit to cap results at 2, got %d", len(limited))
	}
}
