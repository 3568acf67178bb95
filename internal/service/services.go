package service

import (
	"github.com/gameshelf/gameshelf/internal/config"
	"github.com/gameshelf/gameshelf/internal/ingest"
	"github.com/gameshelf/gameshelf/internal/repository"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Game *GameService
}

func NewServices(repos *repository.Repositories, pipeline *ingest.Pipeline, cfg *config.Config, logger *logrus.Logger) *Services {
	return &Services{
		Game: NewGameService(repos.Game, pipeline, cfg.StaleAfter, logger),
	}
}
