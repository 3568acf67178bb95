package ingest

import (
	"context"
	"io"

	"github.com/gameshelf/gameshelf/internal/domain"
	"github.com/gameshelf/gameshelf/internal/igdb"
	"github.com/gameshelf/gameshelf/internal/repository"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakePrimitiveClient scripts PopularityPrimitives responses.
type fakePrimitiveClient struct {
	calls     int
	bodies    []string
	responses func(call int, body string) ([]igdb.PopularityPrimitive, error)
}

func (f *fakePrimitiveClient) PopularityPrimitives(_ context.Context, body string) ([]igdb.PopularityPrimitive, error) {
	call := f.calls
	f.calls++
	f.bodies = append(f.bodies, body)
	return f.responses(call, body)
}

// fakeCatalogClient scripts Games responses per call.
type fakeCatalogClient struct {
	calls     int
	bodies    []string
	responses func(call int, body string) ([]igdb.Game, error)
}

func (f *fakeCatalogClient) Games(_ context.Context, body string) ([]igdb.Game, error) {
	call := f.calls
	f.calls++
	f.bodies = append(f.bodies, body)
	return f.responses(call, body)
}

// fakeScorer returns a fixed score map.
type fakeScorer struct {
	scores map[uint64]float64
	called bool
}

func (f *fakeScorer) FetchScoresForIDs(context.Context, []uint64) map[uint64]float64 {
	f.called = true
	return f.scores
}

// stepRecorder is shared by the fake repos so tests can assert the pipeline's
// step ordering.
type stepRecorder struct {
	steps []string
}

func (r *stepRecorder) record(step string) {
	r.steps = append(r.steps, step)
}

type fakeReferenceRepo struct {
	rec *stepRecorder
	err error

	companies   []*domain.Company
	platforms   []*domain.Platform
	genres      []*domain.Genre
	themes      []*domain.Theme
	collections []*domain.Collection
	franchises  []*domain.Franchise
	policies    []repository.ConflictPolicy
}

func (f *fakeReferenceRepo) UpsertCompanies(_ context.Context, rows []*domain.Company, policy repository.ConflictPolicy) error {
	f.rec.record("references")
	f.companies = append(f.companies, rows...)
	f.policies = append(f.policies, policy)
	return f.err
}

func (f *fakeReferenceRepo) UpsertPlatforms(_ context.Context, rows []*domain.Platform, policy repository.ConflictPolicy) error {
	f.rec.record("references")
	f.platforms = append(f.platforms, rows...)
	f.policies = append(f.policies, policy)
	return f.err
}

func (f *fakeReferenceRepo) UpsertGenres(_ context.Context, rows []*domain.Genre, policy repository.ConflictPolicy) error {
	f.rec.record("references")
	f.genres = append(f.genres, rows...)
	f.policies = append(f.policies, policy)
	return f.err
}

func (f *fakeReferenceRepo) UpsertThemes(_ context.Context, rows []*domain.Theme, policy repository.ConflictPolicy) error {
	f.rec.record("references")
	f.themes = append(f.themes, rows...)
	f.policies = append(f.policies, policy)
	return f.err
}

func (f *fakeReferenceRepo) UpsertCollections(_ context.Context, rows []*domain.Collection, policy repository.ConflictPolicy) error {
	f.rec.record("references")
	f.collections = append(f.collections, rows...)
	f.policies = append(f.policies, policy)
	return f.err
}

func (f *fakeReferenceRepo) UpsertFranchises(_ context.Context, rows []*domain.Franchise, policy repository.ConflictPolicy) error {
	f.rec.record("references")
	f.franchises = append(f.franchises, rows...)
	f.policies = append(f.policies, policy)
	return f.err
}

type fakeRelationshipRepo struct {
	rec *stepRecorder
	err error

	gameCompanies   []*domain.GameCompany
	gamePlatforms   []*domain.GamePlatform
	gameGenres      []*domain.GameGenre
	gameThemes      []*domain.GameTheme
	gameCollections []*domain.GameCollection
	gameFranchises  []*domain.GameFranchise
	ageRatings      []*domain.AgeRating
}

func (f *fakeRelationshipRepo) UpsertGameCompanies(_ context.Context, rows []*domain.GameCompany) error {
	f.rec.record("relationships")
	f.gameCompanies = append(f.gameCompanies, rows...)
	return f.err
}

func (f *fakeRelationshipRepo) UpsertGamePlatforms(_ context.Context, rows []*domain.GamePlatform) error {
	f.rec.record("relationships")
	f.gamePlatforms = append(f.gamePlatforms, rows...)
	return f.err
}

func (f *fakeRelationshipRepo) UpsertGameGenres(_ context.Context, rows []*domain.GameGenre) error {
	f.rec.record("relationships")
	f.gameGenres = append(f.gameGenres, rows...)
	return f.err
}

func (f *fakeRelationshipRepo) UpsertGameThemes(_ context.Context, rows []*domain.GameTheme) error {
	f.rec.record("relationships")
	f.gameThemes = append(f.gameThemes, rows...)
	return f.err
}

func (f *fakeRelationshipRepo) UpsertGameCollections(_ context.Context, rows []*domain.GameCollection) error {
	f.rec.record("relationships")
	f.gameCollections = append(f.gameCollections, rows...)
	return f.err
}

func (f *fakeRelationshipRepo) UpsertGameFranchises(_ context.Context, rows []*domain.GameFranchise) error {
	f.rec.record("relationships")
	f.gameFranchises = append(f.gameFranchises, rows...)
	return f.err
}

func (f *fakeRelationshipRepo) UpsertAgeRatings(_ context.Context, rows []*domain.AgeRating) error {
	f.rec.record("relationships")
	f.ageRatings = append(f.ageRatings, rows...)
	return f.err
}

type fakeGameRepo struct {
	rec *stepRecorder
	err error

	games map[uint64]*domain.Game
}

func newFakeGameRepo(rec *stepRecorder) *fakeGameRepo {
	return &fakeGameRepo{rec: rec, games: make(map[uint64]*domain.Game)}
}

func (f *fakeGameRepo) Upsert(_ context.Context, game *domain.Game) error {
	f.rec.record("games")
	f.games[game.ID] = game
	return f.err
}

func (f *fakeGameRepo) UpsertMany(_ context.Context, games []*domain.Game) error {
	f.rec.record("games")
	for _, g := range games {
		f.games[g.ID] = g
	}
	return f.err
}

func (f *fakeGameRepo) GetByID(_ context.Context, id uint64) (*domain.Game, error) {
	if g, ok := f.games[id]; ok {
		return g, nil
	}
	return nil, domain.ErrGameNotFound
}

func (f *fakeGameRepo) GetBySlug(_ context.Context, slug string) (*domain.Game, error) {
	for _, g := range f.games {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, domain.ErrGameNotFound
}

func (f *fakeGameRepo) List(context.Context, int, int) ([]*domain.Game, error) {
	out := make([]*domain.Game, 0, len(f.games))
	for _, g := range f.games {
		out = append(out, g)
	}
	return out, nil
}
