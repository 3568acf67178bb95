package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/gameshelf/gameshelf/internal/domain"
	"github.com/gameshelf/gameshelf/internal/igdb"
	"github.com/gameshelf/gameshelf/internal/repository"
	"github.com/sirupsen/logrus"
)

// RelationshipUpserter writes the many-to-many join rows for a batch of
// catalog records. The reference upserter must have run for the same batch
// first.
type RelationshipUpserter struct {
	repo   repository.RelationshipRepository
	logger *logrus.Logger
}

func NewRelationshipUpserter(repo repository.RelationshipRepository, logger *logrus.Logger) *RelationshipUpserter {
	return &RelationshipUpserter{repo: repo, logger: logger}
}

// Ensure builds and upserts every relationship kind for the batch,
// deduplicating on the composite key. A company appearing for the same game
// in both developer and publisher roles gets both flags OR-merged onto one
// row.
func (u *RelationshipUpserter) Ensure(ctx context.Context, recs []igdb.Game) error {
	companies := make(map[string]*domain.GameCompany)
	platforms := make(map[string]*domain.GamePlatform)
	genres := make(map[string]*domain.GameGenre)
	themes := make(map[string]*domain.GameTheme)
	collections := make(map[string]*domain.GameCollection)
	franchises := make(map[string]*domain.GameFranchise)
	ageRatings := make(map[string]*domain.AgeRating)

	for _, rec := range recs {
		for _, ic := range rec.InvolvedCompanies {
			key := compositeKey(rec.ID, ic.Company.ID)
			if row, ok := companies[key]; ok {
				row.IsDeveloper = row.IsDeveloper || ic.Developer
				row.IsPublisher = row.IsPublisher || ic.Publisher
				continue
			}
			companies[key] = &domain.GameCompany{
				GameID:      rec.ID,
				CompanyID:   ic.Company.ID,
				IsDeveloper: ic.Developer,
				IsPublisher: ic.Publisher,
			}
		}

		for _, p := range rec.Platforms {
			row := &domain.GamePlatform{GameID: rec.ID, PlatformID: p.ID}
			if rd := platformRelease(rec.ReleaseDates, p.ID); rd != nil {
				date := time.Unix(rd.Date, 0).UTC()
				row.ReleaseDate = &date
				row.ReleaseDateHuman = strptr(rd.Human)
				row.ReleaseDateStatus = statusName(rd)
			}
			platforms[compositeKey(rec.ID, p.ID)] = row
		}

		for _, g := range rec.Genres {
			genres[compositeKey(rec.ID, g.ID)] = &domain.GameGenre{GameID: rec.ID, GenreID: g.ID}
		}
		for _, t := range rec.Themes {
			themes[compositeKey(rec.ID, t.ID)] = &domain.GameTheme{GameID: rec.ID, ThemeID: t.ID}
		}
		for _, c := range rec.Collections {
			collections[compositeKey(rec.ID, c.ID)] = &domain.GameCollection{GameID: rec.ID, CollectionID: c.ID}
		}
		for _, f := range rec.Franchises {
			franchises[compositeKey(rec.ID, f.ID)] = &domain.GameFranchise{GameID: rec.ID, FranchiseID: f.ID}
		}
		for _, ar := range rec.AgeRatings {
			key := compositeKey(rec.ID, uint64(ar.Organization))
			ageRatings[key] = &domain.AgeRating{
				GameID:       rec.ID,
				Organization: ar.Organization,
				RatingValue:  ar.RatingValue,
			}
		}
	}

	if err := u.repo.UpsertGameCompanies(ctx, values(companies)); err != nil {
		return fmt.Errorf("upsert game companies: %w", err)
	}
	if err := u.repo.UpsertGamePlatforms(ctx, values(platforms)); err != nil {
		return fmt.Errorf("upsert game platforms: %w", err)
	}
	if err := u.repo.UpsertGameGenres(ctx, values(genres)); err != nil {
		return fmt.Errorf("upsert game genres: %w", err)
	}
	if err := u.repo.UpsertGameThemes(ctx, values(themes)); err != nil {
		return fmt.Errorf("upsert game themes: %w", err)
	}
	if err := u.repo.UpsertGameCollections(ctx, values(collections)); err != nil {
		return fmt.Errorf("upsert game collections: %w", err)
	}
	if err := u.repo.UpsertGameFranchises(ctx, values(franchises)); err != nil {
		return fmt.Errorf("upsert game franchises: %w", err)
	}
	if err := u.repo.UpsertAgeRatings(ctx, values(ageRatings)); err != nil {
		return fmt.Errorf("upsert age ratings: %w", err)
	}
	return nil
}

// platformRelease picks the earliest positively dated release entry tagged
// with this platform id. Records whose release_dates carry no platform tags
// fall back to the earliest dated entry overall, so the platform row still
// gets a date.
func platformRelease(dates []igdb.ReleaseDate, platformID uint64) *igdb.ReleaseDate {
	var best *igdb.ReleaseDate
	for i := range dates {
		d := &dates[i]
		if d.Date <= 0 || d.Platform != platformID {
			continue
		}
		if best == nil || d.Date < best.Date {
			best = d
		}
	}
	if best != nil {
		return best
	}
	return earliestDated(dates, false)
}

func compositeKey(gameID, otherID uint64) string {
	return fmt.Sprintf("%d-%d", gameID, otherID)
}

func values[K comparable, V any](m map[K]V) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
