package food

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// InMemoryRepository mirrors the SQLite repository's contract for tests and
// local experiments without touching disk.
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	foods  []*Food
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Insert(ctx context.Context, f *Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.foods {
		if existing.Description == f.Description {
			return fmt.Errorf("%q: %w", f.Description, ErrAlreadyExists)
		}
	}

	stored := *f
	stored.ID = r.nextID
	r.nextID++

	stored.Tags = lowerAll(f.Tags)
	stored.Allergens = lowerAll(f.Allergens)
	stored.Servings = make(map[string]float64, len(f.Servings))
	for k, v := range f.Servings {
		stored.Servings[strings.ToLower(k)] = v
	}

	r.foods = append(r.foods, &stored)
	f.ID = stored.ID
	return nil
}

func (r *InMemoryRepository) ExistsByDescription(ctx context.Context, description string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.foods {
		if f.Description == description {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) GetBySlug(ctx context.Context, slug string) (*Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.foods {
		if f.Slug == slug {
			copied := *f
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("slug %q: %w", slug, ErrNotFound)
}

func (r *InMemoryRepository) ListVerifiedSlugs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var slugs []string
	for _, f := range r.foods {
		if f.Verified {
			slugs = append(slugs, f.Slug)
		}
	}
	sort.Strings(slugs)
	return slugs, nil
}

func (r *InMemoryRepository) SearchByDescription(ctx context.Context, substring string, limit int) ([]Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub := strings.ToLower(substring)
	var foods []Food
	for _, f := range r.foods {
		if len(foods) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(f.Description), sub) {
			foods = append(foods, *f)
		}
	}
	return foods, nil
}

func (r *InMemoryRepository) ListTags(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var tags []string
	for _, f := range r.foods {
		for _, tag := range f.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
