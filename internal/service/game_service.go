package service

import (
	"context"
	"errors"
	"time"

	"github.com/gameshelf/gameshelf/internal/domain"
	"github.com/gameshelf/gameshelf/internal/repository"
	"github.com/sirupsen/logrus"
)

// backgroundRefreshTimeout bounds a detached staleness refresh.
const backgroundRefreshTimeout = 2 * time.Minute

// GamePipeline is the slice of the ingest pipeline the read path needs.
type GamePipeline interface {
	FetchGameBySlug(ctx context.Context, slug string) (*domain.Game, error)
	FetchGameByID(ctx context.Context, id uint64) (*domain.Game, error)
}

// GameService serves the read path. A store miss triggers a synchronous
// on-demand fetch; a stale hit is returned immediately while a background
// refresh updates it for the next reader.
type GameService struct {
	gameRepo   repository.GameRepository
	pipeline   GamePipeline
	logger     *logrus.Logger
	staleAfter time.Duration
}

func NewGameService(gameRepo repository.GameRepository, pipeline GamePipeline, staleAfter time.Duration, logger *logrus.Logger) *GameService {
	return &GameService{
		gameRepo:   gameRepo,
		pipeline:   pipeline,
		logger:     logger,
		staleAfter: staleAfter,
	}
}

// GetBySlug returns the stored game, fetching it from IGDB on a miss.
// domain.ErrGameNotFound means the slug is unknown both locally and upstream.
func (s *GameService) GetBySlug(ctx context.Context, slug string) (*domain.Game, error) {
	game, err := s.gameRepo.GetBySlug(ctx, slug)
	if errors.Is(err, domain.ErrGameNotFound) {
		return s.pipeline.FetchGameBySlug(ctx, slug)
	}
	if err != nil {
		return nil, err
	}

	if time.Since(game.UpdatedAt) > s.staleAfter {
		s.refreshStale(game.ID)
	}
	return game, nil
}

func (s *GameService) List(ctx context.Context, limit, offset int) ([]*domain.Game, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.gameRepo.List(ctx, limit, offset)
}

// refreshStale re-fetches a cached game in the background. The triggering
// request already got valid data, so this is never awaited and failures are
// only logged.
func (s *GameService) refreshStale(id uint64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundRefreshTimeout)
		defer cancel()

		if _, err := s.pipeline.FetchGameByID(ctx, id); err != nil {
			s.logger.WithError(err).WithField("game_id", id).
				Warn("background staleness refresh failed")
		}
	}()
}
