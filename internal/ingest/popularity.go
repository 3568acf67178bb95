package ingest

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gameshelf/gameshelf/internal/igdb"
	"github.com/sirupsen/logrus"
)

// IGDB popularity primitive types.
const (
	PrimitiveVisits       = 1
	PrimitiveWantToPlay   = 2
	PrimitivePlaying      = 3
	PrimitiveTotalReviews = 8
)

var primitiveTypes = []int{
	PrimitiveVisits,
	PrimitiveWantToPlay,
	PrimitivePlaying,
	PrimitiveTotalReviews,
}

// primitiveWeights is the composite-score weighting. Absent primitives count
// as zero, they never exclude a game from scoring.
var primitiveWeights = map[int]float64{
	PrimitiveVisits:       0.4,
	PrimitiveWantToPlay:   0.3,
	PrimitivePlaying:      0.2,
	PrimitiveTotalReviews: 0.1,
}

const (
	scoreMultiplier = 1_000_000

	scoreBatchSize = 10
	interTypeDelay = 250 * time.Millisecond
	interChunkDelay = 500 * time.Millisecond

	// maxRetries rate-limited fetches are retried after the initial attempt,
	// backing off 2^(attempt+1) seconds: 2s, 4s, 8s.
	maxRetries = 3
)

// PopularityClient is the slice of the IGDB client the scorer needs.
type PopularityClient interface {
	PopularityPrimitives(ctx context.Context, body string) ([]igdb.PopularityPrimitive, error)
}

// Scorer fetches popularity primitives and folds them into one composite
// score per game.
type Scorer struct {
	client PopularityClient
	logger *logrus.Logger
	sleep  func(time.Duration)
}

func NewScorer(client PopularityClient, logger *logrus.Logger) *Scorer {
	return &Scorer{client: client, logger: logger, sleep: time.Sleep}
}

// ScoreBreakdown carries the per-primitive sums behind a composite score.
type ScoreBreakdown struct {
	Visits       float64 `json:"visits"`
	WantToPlay   float64 `json:"wantToPlay"`
	Playing      float64 `json:"playing"`
	TotalReviews float64 `json:"totalReviews"`
}

type GameScore struct {
	GameID    uint64
	Score     float64
	Breakdown ScoreBreakdown
}

// FetchPrimitives fetches all primitive types for the given game ids, one
// query per type with a short pause in between to stay under the upstream
// rate limit. Rate-limit failures bubble up so the caller can back off; any
// other per-type failure just drops that signal from the result.
func (s *Scorer) FetchPrimitives(ctx context.Context, gameIDs []uint64) ([]igdb.PopularityPrimitive, error) {
	var out []igdb.PopularityPrimitive
	idList := joinIDs(gameIDs)

	for i, pt := range primitiveTypes {
		body := fmt.Sprintf(
			"fields game_id,popularity_type,value; where popularity_type = %d & game_id = (%s); limit %d;",
			pt, idList, len(gameIDs))

		prims, err := s.client.PopularityPrimitives(ctx, body)
		if err != nil {
			if igdb.IsRateLimit(err) {
				return nil, err
			}
			s.logger.WithError(err).WithField("popularity_type", pt).
				Warn("skipping popularity primitive type")
		} else {
			out = append(out, prims...)
		}

		if i < len(primitiveTypes)-1 {
			s.sleep(interTypeDelay)
		}
	}
	return out, nil
}

// ComputeScores groups primitives by game and computes the weighted composite
// score. Results are ordered by game id.
func ComputeScores(prims []igdb.PopularityPrimitive) []GameScore {
	byGame := make(map[uint64]*ScoreBreakdown)
	for _, p := range prims {
		b, ok := byGame[p.GameID]
		if !ok {
			b = &ScoreBreakdown{}
			byGame[p.GameID] = b
		}
		switch p.PopularityType {
		case PrimitiveVisits:
			b.Visits += p.Value
		case PrimitiveWantToPlay:
			b.WantToPlay += p.Value
		case PrimitivePlaying:
			b.Playing += p.Value
		case PrimitiveTotalReviews:
			b.TotalReviews += p.Value
		}
	}

	scores := make([]GameScore, 0, len(byGame))
	for id, b := range byGame {
		weighted := b.Visits*primitiveWeights[PrimitiveVisits] +
			b.WantToPlay*primitiveWeights[PrimitiveWantToPlay] +
			b.Playing*primitiveWeights[PrimitivePlaying] +
			b.TotalReviews*primitiveWeights[PrimitiveTotalReviews]
		scores = append(scores, GameScore{
			GameID:    id,
			Score:     weighted * scoreMultiplier,
			Breakdown: *b,
		})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].GameID < scores[j].GameID })
	return scores
}

// FetchScoresForIDs scores the given ids in chunks, pausing between chunks.
// A chunk that keeps rate-limiting past the retry budget, or fails any other
// way, aborts the run; whatever was scored so far is returned, and callers
// fall back to rating-based popularity for the missing ids.
func (s *Scorer) FetchScoresForIDs(ctx context.Context, gameIDs []uint64) map[uint64]float64 {
	scores := make(map[uint64]float64)

	for start := 0; start < len(gameIDs); start += scoreBatchSize {
		end := start + scoreBatchSize
		if end > len(gameIDs) {
			end = len(gameIDs)
		}
		chunk := gameIDs[start:end]

		prims, err := s.fetchWithRetry(ctx, chunk)
		if err != nil {
			s.logger.WithError(err).WithField("scored", len(scores)).
				Warn("popularity scoring aborted, continuing with partial scores")
			return scores
		}
		for _, gs := range ComputeScores(prims) {
			scores[gs.GameID] = gs.Score
		}

		if end < len(gameIDs) {
			s.sleep(interChunkDelay)
		}
	}
	return scores
}

func (s *Scorer) fetchWithRetry(ctx context.Context, gameIDs []uint64) ([]igdb.PopularityPrimitive, error) {
	for attempt := 0; ; attempt++ {
		prims, err := s.FetchPrimitives(ctx, gameIDs)
		if err == nil {
			return prims, nil
		}
		if !igdb.IsRateLimit(err) || attempt == maxRetries {
			return nil, err
		}

		backoff := time.Duration(1<<(attempt+1)) * time.Second
		s.logger.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"backoff": backoff,
		}).Warn("rate limited fetching popularity primitives, backing off")
		s.sleep(backoff)
	}
}

func joinIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, ",")
}
