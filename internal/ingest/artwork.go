package ingest

import (
	"sort"

	"github.com/gameshelf/gameshelf/internal/igdb"
)

const minArtworkHeight = 500

// artworkTypeOrder is the tie-break preference between artwork type groups:
// concept art, then artwork, then in-game screenshots.
var artworkTypeOrder = []int{1, 2, 3}

// RankArtworks orders a game's artworks so the best hero images come first:
// type groups containing at least one landscape image sort before groups with
// none, and within a group landscape images beat portrait ones, wider first.
// Artworks below the height floor or outside the known types are dropped.
// The result is the ranked list of image ids.
func RankArtworks(artworks []igdb.Artwork) []string {
	groups := make(map[int][]igdb.Artwork)
	for _, a := range artworks {
		if a.Height < minArtworkHeight {
			continue
		}
		if a.ArtworkType < 1 || a.ArtworkType > 3 {
			continue
		}
		groups[a.ArtworkType] = append(groups[a.ArtworkType], a)
	}

	type group struct {
		images       []igdb.Artwork
		hasLandscape bool
	}
	ordered := make([]group, 0, len(groups))
	for _, t := range artworkTypeOrder {
		images, ok := groups[t]
		if !ok {
			continue
		}
		g := group{images: images}
		for _, a := range images {
			if isLandscape(a) {
				g.hasLandscape = true
				break
			}
		}
		ordered = append(ordered, g)
	}

	// Stable, so equal groups keep the type-preference order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].hasLandscape && !ordered[j].hasLandscape
	})

	var ids []string
	for _, g := range ordered {
		sort.SliceStable(g.images, func(i, j int) bool {
			li, lj := isLandscape(g.images[i]), isLandscape(g.images[j])
			if li != lj {
				return li
			}
			return g.images[i].Width > g.images[j].Width
		})
		for _, a := range g.images {
			ids = append(ids, a.ImageID)
		}
	}
	return ids
}

func isLandscape(a igdb.Artwork) bool {
	return a.Width > a.Height
}
