package ingest

import (
	"testing"

	"github.com/gameshelf/gameshelf/internal/igdb"
	"github.com/stretchr/testify/assert"
)

func art(imageID string, w, h, artworkType int) igdb.Artwork {
	return igdb.Artwork{ImageID: imageID, Width: w, Height: h, ArtworkType: artworkType}
}

func TestRankArtworks_DropsSmallAndUnknownTypes(t *testing.T) {
	ids := RankArtworks([]igdb.Artwork{
		art("too-short", 1920, 499, 1),
		art("unknown-type", 1920, 1080, 7),
		art("zero-type", 1920, 1080, 0),
		art("keeper", 1920, 1080, 2),
	})

	assert.Equal(t, []string{"keeper"}, ids)
}

func TestRankArtworks_LandscapeGroupsBeatPortraitGroups(t *testing.T) {
	// Type 1 has only portrait images, type 3 has a landscape one; the
	// landscape group should come out first despite the type preference.
	ids := RankArtworks([]igdb.Artwork{
		art("concept-portrait", 800, 1200, 1),
		art("shot-landscape", 1920, 1080, 3),
		art("shot-portrait", 900, 1400, 3),
	})

	assert.Equal(t, []string{"shot-landscape", "shot-portrait", "concept-portrait"}, ids)
}

func TestRankArtworks_TypeOrderBreaksTies(t *testing.T) {
	// All groups have landscape images, so the type preference decides.
	ids := RankArtworks([]igdb.Artwork{
		art("shot", 1600, 900, 3),
		art("artwork", 1600, 900, 2),
		art("concept", 1600, 900, 1),
	})

	assert.Equal(t, []string{"concept", "artwork", "shot"}, ids)
}

func TestRankArtworks_WiderLandscapeFirstWithinGroup(t *testing.T) {
	ids := RankArtworks([]igdb.Artwork{
		art("narrow", 1280, 720, 2),
		art("portrait", 720, 1280, 2),
		art("wide", 3840, 2160, 2),
	})

	assert.Equal(t, []string{"wide", "narrow", "portrait"}, ids)
}

func TestRankArtworks_Empty(t *testing.T) {
	assert.Empty(t, RankArtworks(nil))
	assert.Empty(t, RankArtworks([]igdb.Artwork{art("small", 400, 300, 1)}))
}
