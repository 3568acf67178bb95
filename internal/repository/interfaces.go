package repository

import (
	"context"

	"github.com/gameshelf/gameshelf/internal/domain"
)

// ConflictPolicy controls what an upsert does when the row already exists.
type ConflictPolicy int

const (
	// ConflictIgnore keeps the existing row untouched. Used by the
	// opportunistic reference upserts, so a later full ingestion stays the
	// authority on reference fields.
	ConflictIgnore ConflictPolicy = iota
	// ConflictOverwrite replaces all non-key columns. Used by the bulk
	// ingestion path.
	ConflictOverwrite
)

type GameRepository interface {
	Upsert(ctx context.Context, game *domain.Game) error
	UpsertMany(ctx context.Context, games []*domain.Game) error
	GetByID(ctx context.Context, id uint64) (*domain.Game, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Game, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Game, error)
}

// ReferenceRepository upserts the shared lookup entities. All methods are
// no-ops on empty input and idempotent under both conflict policies.
type ReferenceRepository interface {
	UpsertCompanies(ctx context.Context, companies []*domain.Company, policy ConflictPolicy) error
	UpsertPlatforms(ctx context.Context, platforms []*domain.Platform, policy ConflictPolicy) error
	UpsertGenres(ctx context.Context, genres []*domain.Genre, policy ConflictPolicy) error
	UpsertThemes(ctx context.Context, themes []*domain.Theme, policy ConflictPolicy) error
	UpsertCollections(ctx context.Context, collections []*domain.Collection, policy ConflictPolicy) error
	UpsertFranchises(ctx context.Context, franchises []*domain.Franchise, policy ConflictPolicy) error
}

// RelationshipRepository upserts game↔entity join rows, conflicting on the
// natural composite key and overwriting.
type RelationshipRepository interface {
	UpsertGameCompanies(ctx context.Context, rows []*domain.GameCompany) error
	UpsertGamePlatforms(ctx context.Context, rows []*domain.GamePlatform) error
	UpsertGameGenres(ctx context.Context, rows []*domain.GameGenre) error
	UpsertGameThemes(ctx context.Context, rows []*domain.GameTheme) error
	UpsertGameCollections(ctx context.Context, rows []*domain.GameCollection) error
	UpsertGameFranchises(ctx context.Context, rows []*domain.GameFranchise) error
	UpsertAgeRatings(ctx context.Context, rows []*domain.AgeRating) error
}

type Repositories struct {
	Game         GameRepository
	Reference    ReferenceRepository
	Relationship RelationshipRepository
}
