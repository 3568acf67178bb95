// Command populate runs a one-shot full population of the game catalog,
// ingesting up to POPULATE_TARGET games ordered by rating count.
package main

import (
	"context"

	"github.com/gameshelf/gameshelf/internal/config"
	"github.com/gameshelf/gameshelf/internal/igdb"
	"github.com/gameshelf/gameshelf/internal/ingest"
	"github.com/gameshelf/gameshelf/internal/repository/postgres"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	godotenv.Load()

	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	repos := postgres.NewRepositories(db)

	client := igdb.NewClient(cfg.IGDBClientID, cfg.IGDBClientSecret, logger)
	pipeline := ingest.NewPipeline(client, repos, logger)

	if err := pipeline.Populate(context.Background(), cfg.PopulateTarget); err != nil {
		logger.Fatalf("population failed: %v", err)
	}
}
