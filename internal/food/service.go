package food

import (
	"context"
	"fmt"
	"strings"

	"github.com/karahanbuhan/besinveri/internal/search"
)

// ErrInvalidMode rejects search modes outside the implemented set. The
// documented tag mode is not implemented yet and falls through here too.
var ErrInvalidMode = fmt.Errorf("invalid search mode")

type Service struct {
	repo Repository

	// baseURL is the public prefix absolute links are built from,
	// e.g. https://api.besinveri.com/api.
	baseURL string
}

func NewService(repo Repository, baseURL string) *Service {
	return &Service{repo: repo, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*Food, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// ListVerified maps every verified food's slug to its canonical URL. Go's
// JSON encoder writes map keys sorted, so the payload is alphabetical by
// slug without extra bookkeeping.
func (s *Service) ListVerified(ctx context.Context) (map[string]string, error) {
	slugs, err := s.repo.ListVerifiedSlugs(ctx)
	if err != nil {
		return nil, err
	}

	urls := make(map[string]string, len(slugs))
	for _, slug := range slugs {
		urls[slug] = fmt.Sprintf("%s/food/%s", s.baseURL, slug)
	}
	return urls, nil
}

// Search filters through the store and ranks the candidates by relevance.
// Mode description/name (case-insensitive) is the implemented path.
func (s *Service) Search(ctx context.Context, query, mode string, limit int) ([]Food, error) {
	switch strings.ToLower(mode) {
	case "description", "name":
	default:
		return nil, fmt.Errorf("%q: %w", mode, ErrInvalidMode)
	}

	foods, err := s.repo.SearchByDescription(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return search.RankByRelevance(foods, func(f Food) string { return f.Description }, query), nil
}

func (s *Service) ListTags(ctx context.Context) ([]string, error) {
	return s.repo.ListTags(ctx)
}
