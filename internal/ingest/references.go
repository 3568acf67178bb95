package ingest

import (
	"context"
	"fmt"

	"github.com/gameshelf/gameshelf/internal/domain"
	"github.com/gameshelf/gameshelf/internal/repository"
	"github.com/sirupsen/logrus"
)

// ReferenceUpserter writes the shared lookup entities referenced by a batch
// of catalog records. It always runs before the relationship upserter for the
// same batch, so join rows never point at missing reference rows.
type ReferenceUpserter struct {
	repo   repository.ReferenceRepository
	logger *logrus.Logger
}

func NewReferenceUpserter(repo repository.ReferenceRepository, logger *logrus.Logger) *ReferenceUpserter {
	return &ReferenceUpserter{repo: repo, logger: logger}
}

// Ensure deduplicates the set by id (last occurrence wins when fields differ)
// and upserts every entity family under the given conflict policy. Empty
// families are skipped; re-running with the same input is a no-op.
func (u *ReferenceUpserter) Ensure(ctx context.Context, set ReferenceSet, policy repository.ConflictPolicy) error {
	if companies := dedupeByID(set.Companies, func(c *domain.Company) uint64 { return c.ID }); len(companies) > 0 {
		if err := u.repo.UpsertCompanies(ctx, companies, policy); err != nil {
			return fmt.Errorf("upsert companies: %w", err)
		}
	}
	if platforms := dedupeByID(set.Platforms, func(p *domain.Platform) uint64 { return p.ID }); len(platforms) > 0 {
		if err := u.repo.UpsertPlatforms(ctx, platforms, policy); err != nil {
			return fmt.Errorf("upsert platforms: %w", err)
		}
	}
	if genres := dedupeByID(set.Genres, func(g *domain.Genre) uint64 { return g.ID }); len(genres) > 0 {
		if err := u.repo.UpsertGenres(ctx, genres, policy); err != nil {
			return fmt.Errorf("upsert genres: %w", err)
		}
	}
	if themes := dedupeByID(set.Themes, func(t *domain.Theme) uint64 { return t.ID }); len(themes) > 0 {
		if err := u.repo.UpsertThemes(ctx, themes, policy); err != nil {
			return fmt.Errorf("upsert themes: %w", err)
		}
	}
	if collections := dedupeByID(set.Collections, func(c *domain.Collection) uint64 { return c.ID }); len(collections) > 0 {
		if err := u.repo.UpsertCollections(ctx, collections, policy); err != nil {
			return fmt.Errorf("upsert collections: %w", err)
		}
	}
	if franchises := dedupeByID(set.Franchises, func(f *domain.Franchise) uint64 { return f.ID }); len(franchises) > 0 {
		if err := u.repo.UpsertFranchises(ctx, franchises, policy); err != nil {
			return fmt.Errorf("upsert franchises: %w", err)
		}
	}
	return nil
}

// dedupeByID keeps one element per id, preserving first-seen order but
// letting the last occurrence's fields win.
func dedupeByID[T any](items []*T, id func(*T) uint64) []*T {
	seen := make(map[uint64]int, len(items))
	out := make([]*T, 0, len(items))
	for _, item := range items {
		if idx, ok := seen[id(item)]; ok {
			out[idx] = item
			continue
		}
		seen[id(item)] = len(out)
		out = append(out, item)
	}
	return out
}
