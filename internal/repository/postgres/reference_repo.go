package postgres

import (
	"context"

	"github.com/gameshelf/gameshelf/internal/domain"
	"github.com/gameshelf/gameshelf/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type referenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *referenceRepository {
	return &referenceRepository{db: db}
}

func onConflictID(policy repository.ConflictPolicy) clause.OnConflict {
	oc := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}}
	if policy == repository.ConflictIgnore {
		oc.DoNothing = true
	} else {
		oc.UpdateAll = true
	}
	return oc
}

func (r *referenceRepository) UpsertCompanies(ctx context.Context, companies []*domain.Company, policy repository.ConflictPolicy) error {
	if len(companies) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(onConflictID(policy)).Create(companies).Error
}

func (r *referenceRepository) UpsertPlatforms(ctx context.Context, platforms []*domain.Platform, policy repository.ConflictPolicy) error {
	if len(platforms) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(onConflictID(policy)).Create(platforms).Error
}

func (r *referenceRepository) UpsertGenres(ctx context.Context, genres []*domain.Genre, policy repository.ConflictPolicy) error {
	if len(genres) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(onConflictID(policy)).Create(genres).Error
}

func (r *referenceRepository) UpsertThemes(ctx context.Context, themes []*domain.Theme, policy repository.ConflictPolicy) error {
	if len(themes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(onConflictID(policy)).Create(themes).Error
}

func (r *referenceRepository) UpsertCollections(ctx context.Context, collections []*domain.Collection, policy repository.ConflictPolicy) error {
	if len(collections) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(onConflictID(policy)).Create(collections).Error
}

func (r *referenceRepository) UpsertFranchises(ctx context.Context, franchises []*domain.Franchise, policy repository.ConflictPolicy) error {
	if len(franchises) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(onConflictID(policy)).Create(franchises).Error
}
