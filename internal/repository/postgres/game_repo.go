package postgres

import (
	"context"
	"errors"

	"github.com/gameshelf/gameshelf/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *gameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Upsert(ctx context.Context, game *domain.Game) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(game).Error
}

func (r *gameRepository) UpsertMany(ctx context.Context, games []*domain.Game) error {
	if len(games) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(games).Error
}

func (r *gameRepository) GetByID(ctx context.Context, id uint64) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) GetBySlug(ctx context.Context, slug string) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).First(&game, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) List(ctx context.Context, limit, offset int) ([]*domain.Game, error) {
	var games []*domain.Game
	err := r.db.WithContext(ctx).
		Order("popularity DESC").
		Limit(limit).
		Offset(offset).
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}
