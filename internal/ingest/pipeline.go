// Package ingest is the IGDB ETL core: it fetches raw catalog records,
// scores their popularity, normalizes them into relational rows and upserts
// everything idempotently, references first.
package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gameshelf/gameshelf/internal/domain"
	"github.com/gameshelf/gameshelf/internal/igdb"
	"github.com/gameshelf/gameshelf/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	populatePageSize  = 500
	populatePageDelay = 150 * time.Millisecond
	recentWindow      = 90 * 24 * time.Hour
	refreshPageSize   = 500
	minRatingCount    = 5
)

// excludedGameTypes are catalog record types skipped during bulk ingestion:
// bundles, mods and updates.
var excludedGameTypes = []int{3, 5, 14}

// gameFields is the Apicalypse field list requested for every games query,
// expanded so one response carries everything normalization needs.
const gameFields = "*, cover.*, artworks.*, screenshots.*, videos.*, websites.*, " +
	"involved_companies.*, involved_companies.company.*, involved_companies.company.logo.*, " +
	"platforms.*, platforms.platform_logo.*, genres.*, themes.*, collections.*, franchises.*, " +
	"release_dates.*, release_dates.status.*, age_ratings.*"

type catalogClient interface {
	Games(ctx context.Context, body string) ([]igdb.Game, error)
}

type popularityScorer interface {
	FetchScoresForIDs(ctx context.Context, gameIDs []uint64) map[uint64]float64
}

// Pipeline sequences the ingestion components for a batch of records: fetch,
// score, normalize, then upsert references, games and relationships in that
// order. Remote calls are sequential on purpose, to respect the upstream
// rate limit.
type Pipeline struct {
	client        catalogClient
	scorer        popularityScorer
	games         repository.GameRepository
	references    *ReferenceUpserter
	relationships *RelationshipUpserter
	logger        *logrus.Logger
	now           func() time.Time
	sleep         func(time.Duration)
}

func NewPipeline(client *igdb.Client, repos *repository.Repositories, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		client:        client,
		scorer:        NewScorer(client, logger),
		games:         repos.Game,
		references:    NewReferenceUpserter(repos.Reference, logger),
		relationships: NewRelationshipUpserter(repos.Relationship, logger),
		logger:        logger,
		now:           time.Now,
		sleep:         time.Sleep,
	}
}

// ingestBatch runs the full pipeline for one batch of raw records. A failed
// upsert step aborts the remaining steps for the batch.
func (p *Pipeline) ingestBatch(ctx context.Context, log *logrus.Entry, recs []igdb.Game) error {
	if len(recs) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}
	scores := p.scorer.FetchScoresForIDs(ctx, ids)

	now := p.now()
	games := make([]*domain.Game, 0, len(recs))
	var refs ReferenceSet
	for _, rec := range recs {
		var score *float64
		if v, ok := scores[rec.ID]; ok {
			score = &v
		}
		game, set := Normalize(rec, score, now)
		games = append(games, game)
		refs.Merge(set)
	}

	if err := p.references.Ensure(ctx, refs, repository.ConflictOverwrite); err != nil {
		log.WithError(err).Error("reference upsert failed")
		return err
	}
	if err := p.games.UpsertMany(ctx, games); err != nil {
		log.WithError(err).Error("game upsert failed")
		return fmt.Errorf("upsert games: %w", err)
	}
	if err := p.relationships.Ensure(ctx, recs); err != nil {
		log.WithError(err).Error("relationship upsert failed")
		return err
	}

	log.WithFields(logrus.Fields{"games": len(games), "scored": len(scores)}).
		Info("batch ingested")
	return nil
}

// Populate pages through the catalog by rating count until target games have
// been ingested or the catalog runs dry.
func (p *Pipeline) Populate(ctx context.Context, target int) error {
	log := p.logger.WithField("run", uuid.NewString())
	log.WithField("target", target).Info("population started")

	total := 0
	for offset := 0; total < target; offset += populatePageSize {
		limit := populatePageSize
		if remaining := target - total; remaining < limit {
			limit = remaining
		}

		body := fmt.Sprintf(
			"fields %s; where total_rating_count >= %d & game_type != (%s); sort total_rating_count desc; limit %d; offset %d;",
			gameFields, minRatingCount, joinInts(excludedGameTypes), limit, offset)

		recs, err := p.client.Games(ctx, body)
		if err != nil {
			log.WithError(err).WithField("offset", offset).Error("population page fetch failed")
			return fmt.Errorf("fetch page at offset %d: %w", offset, err)
		}
		if len(recs) == 0 {
			break
		}

		if err := p.ingestBatch(ctx, log, recs); err != nil {
			return err
		}
		total += len(recs)

		if len(recs) < limit {
			break
		}
		if total < target {
			p.sleep(populatePageDelay)
		}
	}

	log.WithField("total", total).Info("population complete")
	return nil
}

// RefreshRecent re-ingests the trailing-window slice of the catalog: the
// newest releases and the most hyped upcoming titles, deduplicated into one
// batch. A failed sub-query is logged and contributes zero records instead
// of aborting the whole refresh.
func (p *Pipeline) RefreshRecent(ctx context.Context) error {
	log := p.logger.WithField("run", uuid.NewString())
	log.Info("refresh started")

	cutoff := p.now().Add(-recentWindow).Unix()
	nowUnix := p.now().Unix()
	exclude := joinInts(excludedGameTypes)

	newest := fmt.Sprintf(
		"fields %s; where first_release_date >= %d & first_release_date <= %d & game_type != (%s); sort first_release_date desc; limit %d;",
		gameFields, cutoff, nowUnix, exclude, refreshPageSize)
	hyped := fmt.Sprintf(
		"fields %s; where first_release_date >= %d & hypes > 0 & game_type != (%s); sort hypes desc; limit %d;",
		gameFields, cutoff, exclude, refreshPageSize)

	var merged []igdb.Game
	seen := make(map[uint64]bool)
	for _, body := range []string{newest, hyped} {
		recs, err := p.client.Games(ctx, body)
		if err != nil {
			log.WithError(err).Warn("refresh sub-query failed, continuing without its records")
			continue
		}
		for _, rec := range recs {
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
			merged = append(merged, rec)
		}
	}

	if len(merged) == 0 {
		log.Info("refresh found no records")
		return nil
	}
	return p.ingestBatch(ctx, log, merged)
}

// FetchGameBySlug fetches a single game on demand and ingests it. Zero
// remote matches means the game genuinely does not exist upstream.
func (p *Pipeline) FetchGameBySlug(ctx context.Context, slug string) (*domain.Game, error) {
	body := fmt.Sprintf(`fields %s; where slug = "%s"; limit 1;`,
		gameFields, igdb.EscapeString(slug))
	return p.fetchOne(ctx, body)
}

// FetchGameByID re-fetches a known game, refreshing its stored rows.
func (p *Pipeline) FetchGameByID(ctx context.Context, id uint64) (*domain.Game, error) {
	body := fmt.Sprintf("fields %s; where id = %d; limit 1;", gameFields, id)
	return p.fetchOne(ctx, body)
}

func (p *Pipeline) fetchOne(ctx context.Context, body string) (*domain.Game, error) {
	recs, err := p.client.Games(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("fetch game: %w", err)
	}
	if len(recs) == 0 {
		return nil, domain.ErrGameNotFound
	}

	log := p.logger.WithField("run", uuid.NewString())
	if err := p.ingestBatch(ctx, log, recs); err != nil {
		return nil, err
	}
	return p.games.GetByID(ctx, recs[0].ID)
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
