// Package ingest seeds the store from JSON fixture files at startup. It is
// best-effort end to end: a broken file or record is logged and skipped, and
// the server starts with whatever the store already holds.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/karahanbuhan/besinveri/internal/food"
	"github.com/karahanbuhan/besinveri/internal/logger"
)

type Seeder struct {
	repo food.Repository
	log  *logger.Logger
}

func NewSeeder(repo food.Repository, log *logger.Logger) *Seeder {
	return &Seeder{repo: repo, log: log}
}

// LoadDir parses every file in dir as a JSON array of foods. Files that
// cannot be read or parsed are skipped with a warning.
func (s *Seeder) LoadDir(dir string) []food.Food {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Warn("fixture dir not readable, skipping ingestion", "dir", dir, "error", err)
		return nil
	}

	var all []food.Food
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Warn("fixture file not readable", "file", path, "error", err)
			continue
		}

		var foods []food.Food
		if err := json.Unmarshal(data, &foods); err != nil {
			s.log.Warn("fixture file is not a JSON food list", "file", path, "error", err)
			continue
		}

		all = append(all, foods...)
	}
	return all
}

// Seed inserts the foods one by one. Existing descriptions are skipped, so
// running Seed twice over the same fixtures changes nothing: the fixtures
// are defaults, manual edits in the store always win.
func (s *Seeder) Seed(ctx context.Context, foods []food.Food) {
	for i := range foods {
		f := &foods[i]
		f.Slug = food.Slugify(f.Description)

		if err := s.repo.Insert(ctx, f); err != nil {
			if errors.Is(err, food.ErrAlreadyExists) {
				s.log.Debug("food already in store, skipping", "description", f.Description)
			} else {
				s.log.Warn("could not ingest food", "description", f.Description, "error", err)
			}
			continue
		}

		s.log.Info("food ingested", "description", f.Description, "id", f.ID, "slug", f.Slug)
	}
}

// Run loads the fixture directory and seeds the store. Called from main
// before the listener starts, so no readers race the writes.
func (s *Seeder) Run(ctx context.Context, dir string) {
	s.Seed(ctx, s.LoadDir(dir))
}
