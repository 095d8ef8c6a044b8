package food

import "context"

// Repository is the closed set of store operations the service needs. The
// SQLite implementation is the real one; the in-memory one backs tests.
type Repository interface {
	// Insert persists a food with its image, source, tags, allergens and
	// servings in a single transaction. ErrAlreadyExists when a food with
	// the same description is present; the fixtures are a seed, not an
	// upsert source, so manual edits in the store always win.
	Insert(ctx context.Context, f *Food) error

	ExistsByDescription(ctx context.Context, description string) (bool, error)

	// GetBySlug returns one food with its nested collections populated.
	// ErrNotFound when the slug is unknown.
	GetBySlug(ctx context.Context, slug string) (*Food, error)

	// ListVerifiedSlugs returns the slugs of verified foods only, ordered
	// alphabetically. Unverified foods stay reachable through GetBySlug.
	ListVerifiedSlugs(ctx context.Context) ([]string, error)

	// SearchByDescription returns foods whose description contains the
	// substring, case-insensitively, capped at limit. Unranked; the search
	// ranker orders the result.
	SearchByDescription(ctx context.Context, substring string, limit int) ([]Food, error)

	ListTags(ctx context.Context) ([]string, error)
}
