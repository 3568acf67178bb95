package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/gameshelf/gameshelf/internal/domain"
	"github.com/gameshelf/gameshelf/internal/repository/postgres"
	"github.com/gameshelf/gameshelf/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRepository_Upsert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tdb := testutil.NewTestDB(t)
	repo := postgres.NewGameRepository(tdb.DB)
	ctx := context.Background()

	t.Run("inserts a new game", func(t *testing.T) {
		tdb.Truncate(t)

		game := testutil.NewGameBuilder().WithID(100).WithSlug("new-game").Value()
		require.NoError(t, repo.Upsert(ctx, game))

		got, err := repo.GetByID(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, "new-game", got.Slug)
	})

	t.Run("re-upserting overwrites in place", func(t *testing.T) {
		tdb.Truncate(t)

		game := testutil.NewGameBuilder().WithID(100).WithSlug("same-game").WithPopularity(10).Value()
		require.NoError(t, repo.Upsert(ctx, game))

		updated := testutil.NewGameBuilder().WithID(100).WithSlug("same-game").
			WithName("Renamed").WithPopularity(99).Value()
		require.NoError(t, repo.Upsert(ctx, updated))

		got, err := repo.GetByID(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.Equal(t, 99.0, got.Popularity)

		var count int64
		require.NoError(t, tdb.DB.Model(&domain.Game{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("re-upserting refreshes updated_at", func(t *testing.T) {
		tdb.Truncate(t)

		game := testutil.NewGameBuilder().WithID(100).WithSlug("aging-game").Value()
		require.NoError(t, repo.Upsert(ctx, game))

		stale := time.Now().Add(-30 * 24 * time.Hour)
		require.NoError(t, tdb.DB.Model(&domain.Game{}).
			Where("id = ?", 100).Update("updated_at", stale).Error)

		require.NoError(t, repo.Upsert(ctx, testutil.NewGameBuilder().
			WithID(100).WithSlug("aging-game").Value()))

		got, err := repo.GetByID(ctx, 100)
		require.NoError(t, err)
		assert.True(t, got.UpdatedAt.After(stale.Add(24*time.Hour)),
			"an overwrite should reset the staleness clock")
	})
}

func TestGameRepository_UpsertMany(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tdb := testutil.NewTestDB(t)
	repo := postgres.NewGameRepository(tdb.DB)
	ctx := context.Background()

	t.Run("batch insert and partial overlap", func(t *testing.T) {
		tdb.Truncate(t)

		first := []*domain.Game{
			testutil.NewGameBuilder().WithID(1).WithSlug("one").Value(),
			testutil.NewGameBuilder().WithID(2).WithSlug("two").Value(),
		}
		require.NoError(t, repo.UpsertMany(ctx, first))

		second := []*domain.Game{
			testutil.NewGameBuilder().WithID(2).WithSlug("two").WithName("Two Redux").Value(),
			testutil.NewGameBuilder().WithID(3).WithSlug("three").Value(),
		}
		require.NoError(t, repo.UpsertMany(ctx, second))

		var count int64
		require.NoError(t, tdb.DB.Model(&domain.Game{}).Count(&count).Error)
		assert.Equal(t, int64(3), count)

		got, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Two Redux", got.Name)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		require.NoError(t, repo.UpsertMany(ctx, nil))
	})
}

func TestGameRepository_Get(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tdb := testutil.NewTestDB(t)
	repo := postgres.NewGameRepository(tdb.DB)
	ctx := context.Background()

	t.Run("by slug", func(t *testing.T) {
		tdb.Truncate(t)
		testutil.NewGameBuilder().WithID(7).WithSlug("findable").Build(t, tdb.DB)

		got, err := repo.GetBySlug(ctx, "findable")
		require.NoError(t, err)
		assert.Equal(t, uint64(7), got.ID)
	})

	t.Run("missing rows map to the domain error", func(t *testing.T) {
		tdb.Truncate(t)

		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrGameNotFound)

		_, err = repo.GetBySlug(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrGameNotFound)
	})
}

func TestGameRepository_List(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tdb := testutil.NewTestDB(t)
	repo := postgres.NewGameRepository(tdb.DB)
	ctx := context.Background()

	tdb.Truncate(t)
	testutil.NewGameBuilder().WithID(1).WithSlug("low").WithPopularity(10).Build(t, tdb.DB)
	testutil.NewGameBuilder().WithID(2).WithSlug("high").WithPopularity(1000).Build(t, tdb.DB)
	testutil.NewGameBuilder().WithID(3).WithSlug("mid").WithPopularity(500).Build(t, tdb.DB)

	games, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "high", games[0].Slug)
	assert.Equal(t, "mid", games[1].Slug)

	rest, err := repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "low", rest[0].Slug)
}
