package ingest

import (
	"encoding/json"
	"time"

	"github.com/gameshelf/gameshelf/internal/domain"
	"github.com/gameshelf/gameshelf/internal/igdb"
	"gorm.io/datatypes"
)

// storeWebsiteTypes are the IGDB website type ids treated as store links
// (Steam, GOG, Epic, itch.io, console storefronts, ...).
var storeWebsiteTypes = map[int]bool{
	10: true, 11: true, 12: true, 13: true,
	16: true, 17: true, 22: true, 23: true, 24: true,
}

const (
	websiteTypeOfficial = 1
	themeIDErotic       = 42
)

// ReferenceSet collects the reference entity stubs embedded in one or more
// catalog records. The pipeline upserts the set before writing game or
// relationship rows, which is what keeps foreign keys from dangling.
type ReferenceSet struct {
	Companies   []*domain.Company
	Platforms   []*domain.Platform
	Genres      []*domain.Genre
	Themes      []*domain.Theme
	Collections []*domain.Collection
	Franchises  []*domain.Franchise
}

func (s *ReferenceSet) Merge(o ReferenceSet) {
	s.Companies = append(s.Companies, o.Companies...)
	s.Platforms = append(s.Platforms, o.Platforms...)
	s.Genres = append(s.Genres, o.Genres...)
	s.Themes = append(s.Themes, o.Themes...)
	s.Collections = append(s.Collections, o.Collections...)
	s.Franchises = append(s.Franchises, o.Franchises...)
}

// Normalize flattens one raw catalog record into the Game row plus the
// reference entities it mentions. It is pure: upserting the returned set is
// the caller's job, and must happen before the game row is written.
//
// score is the weighted popularity for this game, or nil when the scoring
// run had nothing for it, in which case the rating aggregate stands in.
func Normalize(rec igdb.Game, score *float64, now time.Time) (*domain.Game, ReferenceSet) {
	resolved := ResolveReleaseDate(rec.ReleaseDates, rec.FirstReleaseDate, now)

	game := &domain.Game{
		ID:                  rec.ID,
		Name:                rec.Name,
		Slug:                rec.Slug,
		Summary:             rec.Summary,
		Storyline:           rec.Storyline,
		Popularity:          popularityOf(rec, score),
		OfficialReleaseDate: resolved.OfficialDate,
		ReleaseDateHuman:    resolved.Human,
		ReleaseDateStatus:   resolved.Status,
		IsReleased:          isReleased(rec, resolved, now),
		IsNSFW:              isNSFW(rec),
		Rating:              rec.TotalRating,
		RatingCount:         rec.TotalRatingCount,
		Artworks:            toJSON(RankArtworks(rec.Artworks)),
		Screenshots:         toJSON(screenshotIDs(rec.Screenshots)),
		Videos:              toJSON(videos(rec.Videos)),
		Websites:            toJSON(classifyWebsites(rec.Websites)),
	}
	if rec.Cover != nil {
		game.CoverImageID = rec.Cover.ImageID
	}

	return game, referencesOf(rec)
}

func popularityOf(rec igdb.Game, score *float64) float64 {
	if score != nil {
		return *score
	}
	return float64(rec.TotalRatingCount) * (rec.TotalRating / 100)
}

func isReleased(rec igdb.Game, resolved ResolvedRelease, now time.Time) bool {
	if resolved.OfficialDate != nil {
		return !resolved.OfficialDate.After(now)
	}
	return rec.FirstReleaseDate > 0 && time.Unix(rec.FirstReleaseDate, 0).Before(now)
}

func isNSFW(rec igdb.Game) bool {
	for _, t := range rec.Themes {
		if t.ID == themeIDErotic {
			return true
		}
	}
	return false
}

// classifyWebsites splits a record's websites into the official site (first
// occurrence wins) and store links keyed by website type.
func classifyWebsites(sites []igdb.Website) domain.GameWebsites {
	ws := domain.GameWebsites{Stores: make(map[int]string)}
	for _, s := range sites {
		switch {
		case s.Type == websiteTypeOfficial:
			if ws.Official == "" {
				ws.Official = s.URL
			}
		case storeWebsiteTypes[s.Type]:
			ws.Stores[s.Type] = s.URL
		}
	}
	return ws
}

func screenshotIDs(shots []igdb.Screenshot) []string {
	ids := make([]string, 0, len(shots))
	for _, s := range shots {
		ids = append(ids, s.ImageID)
	}
	return ids
}

func videos(vids []igdb.Video) []domain.GameVideo {
	out := make([]domain.GameVideo, 0, len(vids))
	for _, v := range vids {
		out = append(out, domain.GameVideo{Name: v.Name, VideoID: v.VideoID})
	}
	return out
}

func referencesOf(rec igdb.Game) ReferenceSet {
	var set ReferenceSet
	for _, ic := range rec.InvolvedCompanies {
		c := &domain.Company{ID: ic.Company.ID, Name: ic.Company.Name, Slug: ic.Company.Slug}
		if ic.Company.Logo != nil {
			c.LogoImageID = ic.Company.Logo.ImageID
		}
		set.Companies = append(set.Companies, c)
	}
	for _, p := range rec.Platforms {
		pl := &domain.Platform{ID: p.ID, Name: p.Name, Slug: p.Slug, Abbreviation: p.Abbreviation}
		if p.PlatformLogo != nil {
			pl.LogoImageID = p.PlatformLogo.ImageID
		}
		set.Platforms = append(set.Platforms, pl)
	}
	for _, g := range rec.Genres {
		set.Genres = append(set.Genres, &domain.Genre{ID: g.ID, Name: g.Name, Slug: g.Slug})
	}
	for _, t := range rec.Themes {
		set.Themes = append(set.Themes, &domain.Theme{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	for _, c := range rec.Collections {
		set.Collections = append(set.Collections, &domain.Collection{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	for _, f := range rec.Franchises {
		set.Franchises = append(set.Franchises, &domain.Franchise{ID: f.ID, Name: f.Name, Slug: f.Slug})
	}
	return set
}

func toJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}
