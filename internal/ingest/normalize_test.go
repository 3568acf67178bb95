package ingest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gameshelf/gameshelf/internal/domain"
	"github.com/gameshelf/gameshelf/internal/igdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_BasicFields(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	released := now.AddDate(-2, 0, 0).Unix()
	rec := igdb.Game{
		ID:               1942,
		Name:             "Hollow Depths",
		Slug:             "hollow-depths",
		Summary:          "A cave.",
		FirstReleaseDate: released,
		TotalRating:      91.5,
		TotalRatingCount: 412,
		Cover:            &igdb.Cover{ImageID: "co1abc"},
	}
	score := 123456.0

	game, _ := Normalize(rec, &score, now)

	assert.Equal(t, uint64(1942), game.ID)
	assert.Equal(t, "hollow-depths", game.Slug)
	assert.Equal(t, "co1abc", game.CoverImageID)
	assert.Equal(t, 123456.0, game.Popularity)
	assert.True(t, game.IsReleased)
	assert.False(t, game.IsNSFW)
	require.NotNil(t, game.OfficialReleaseDate)
	assert.Equal(t, time.Unix(released, 0).UTC(), *game.OfficialReleaseDate)
}

func TestNormalize_PopularityFallsBackToRating(t *testing.T) {
	rec := igdb.Game{ID: 42, TotalRating: 80, TotalRatingCount: 20}

	game, _ := Normalize(rec, nil, time.Now())

	// 20 * (80 / 100)
	assert.InDelta(t, 16.0, game.Popularity, 1e-9)
}

func TestNormalize_NSFWTheme(t *testing.T) {
	rec := igdb.Game{ID: 7, Themes: []igdb.Ref{{ID: 1}, {ID: 42}}}
	game, _ := Normalize(rec, nil, time.Now())
	assert.True(t, game.IsNSFW)

	rec.Themes = []igdb.Ref{{ID: 1}, {ID: 17}}
	game, _ = Normalize(rec, nil, time.Now())
	assert.False(t, game.IsNSFW)
}

func TestNormalize_UpcomingGameNotReleased(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	rec := igdb.Game{ID: 9, FirstReleaseDate: now.AddDate(0, 3, 0).Unix()}

	game, _ := Normalize(rec, nil, now)

	assert.False(t, game.IsReleased)
}

func TestClassifyWebsites(t *testing.T) {
	ws := classifyWebsites([]igdb.Website{
		{Type: 1, URL: "https://first.example"},
		{Type: 1, URL: "https://second.example"},
		{Type: 13, URL: "https://store.steampowered.com/app/1"},
		{Type: 13, URL: "https://store.steampowered.com/app/2"},
		{Type: 17, URL: "https://gog.example"},
		{Type: 4, URL: "https://facebook.example"},
	})

	assert.Equal(t, "https://first.example", ws.Official, "first official site wins")
	assert.Equal(t, "https://store.steampowered.com/app/2", ws.Stores[13],
		"later store link of the same type replaces the earlier one")
	assert.Equal(t, "https://gog.example", ws.Stores[17])
	assert.NotContains(t, ws.Stores, 4, "non-store types are dropped")
}

func TestNormalize_WebsitesRoundTrip(t *testing.T) {
	rec := igdb.Game{ID: 3, Websites: []igdb.Website{
		{Type: 1, URL: "https://official.example"},
		{Type: 16, URL: "https://epic.example"},
	}}

	game, _ := Normalize(rec, nil, time.Now())

	var ws domain.GameWebsites
	require.NoError(t, json.Unmarshal(game.Websites, &ws))
	assert.Equal(t, "https://official.example", ws.Official)
	assert.Equal(t, "https://epic.example", ws.Stores[16])
}

func TestNormalize_MediaColumns(t *testing.T) {
	rec := igdb.Game{
		ID:          5,
		Screenshots: []igdb.Screenshot{{ImageID: "sc1"}, {ImageID: "sc2"}},
		Videos:      []igdb.Video{{Name: "Trailer", VideoID: "yt123"}},
		Artworks:    []igdb.Artwork{{ImageID: "ar1", Width: 1920, Height: 1080, ArtworkType: 2}},
	}

	game, _ := Normalize(rec, nil, time.Now())

	var shots []string
	require.NoError(t, json.Unmarshal(game.Screenshots, &shots))
	assert.Equal(t, []string{"sc1", "sc2"}, shots)

	var vids []domain.GameVideo
	require.NoError(t, json.Unmarshal(game.Videos, &vids))
	require.Len(t, vids, 1)
	assert.Equal(t, "yt123", vids[0].VideoID)

	var arts []string
	require.NoError(t, json.Unmarshal(game.Artworks, &arts))
	assert.Equal(t, []string{"ar1"}, arts)
}

func TestNormalize_ReferenceExtraction(t *testing.T) {
	rec := igdb.Game{
		ID: 11,
		InvolvedCompanies: []igdb.InvolvedCompany{
			{Company: igdb.Company{ID: 100, Name: "Studio A", Slug: "studio-a"}, Developer: true},
		},
		Platforms: []igdb.Platform{{ID: 6, Name: "PC", Slug: "win", Abbreviation: "PC"}},
		Genres:    []igdb.Ref{{ID: 31, Name: "Adventure", Slug: "adventure"}},
		Themes:    []igdb.Ref{{ID: 1, Name: "Action", Slug: "action"}},
	}

	_, set := Normalize(rec, nil, time.Now())

	require.Len(t, set.Companies, 1)
	assert.Equal(t, "studio-a", set.Companies[0].Slug)
	require.Len(t, set.Platforms, 1)
	assert.Equal(t, "PC", set.Platforms[0].Abbreviation)
	require.Len(t, set.Genres, 1)
	require.Len(t, set.Themes, 1)
	assert.Empty(t, set.Collections)
	assert.Empty(t, set.Franchises)
}

func TestReferenceSetMerge(t *testing.T) {
	var set ReferenceSet
	set.Merge(ReferenceSet{Genres: []*domain.Genre{{ID: 1}}})
	set.Merge(ReferenceSet{Genres: []*domain.Genre{{ID: 2}}, Themes: []*domain.Theme{{ID: 9}}})

	assert.Len(t, set.Genres, 2)
	assert.Len(t, set.Themes, 1)
}
