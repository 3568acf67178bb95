package postgres

import (
	"context"

	"github.com/gameshelf/gameshelf/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type relationshipRepository struct {
	db *gorm.DB
}

func NewRelationshipRepository(db *gorm.DB) *relationshipRepository {
	return &relationshipRepository{db: db}
}

func onConflictComposite(cols ...string) clause.OnConflict {
	columns := make([]clause.Column, len(cols))
	for i, c := range cols {
		columns[i] = clause.Column{Name: c}
	}
	return clause.OnConflict{Columns: columns, UpdateAll: true}
}

func (r *relationshipRepository) UpsertGameCompanies(ctx context.Context, rows []*domain.GameCompany) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(onConflictComposite("game_id", "company_id")).
		Create(rows).Error
}

func (r *relationshipRepository) UpsertGamePlatforms(ctx context.Context, rows []*domain.GamePlatform) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(onConflictComposite("game_id", "platform_id")).
		Create(rows).Error
}

func (r *relationshipRepository) UpsertGameGenres(ctx context.Context, rows []*domain.GameGenre) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(onConflictComposite("game_id", "genre_id")).
		Create(rows).Error
}

func (r *relationshipRepository) UpsertGameThemes(ctx context.Context, rows []*domain.GameTheme) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(onConflictComposite("game_id", "theme_id")).
		Create(rows).Error
}

func (r *relationshipRepository) UpsertGameCollections(ctx context.Context, rows []*domain.GameCollection) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(onConflictComposite("game_id", "collection_id")).
		Create(rows).Error
}

func (r *relationshipRepository) UpsertGameFranchises(ctx context.Context, rows []*domain.GameFranchise) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(onConflictComposite("game_id", "franchise_id")).
		Create(rows).Error
}

func (r *relationshipRepository) UpsertAgeRatings(ctx context.Context, rows []*domain.AgeRating) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(onConflictComposite("game_id", "organization")).
		Create(rows).Error
}
