package ingest

import (
	"strings"
	"time"

	"github.com/gameshelf/gameshelf/internal/igdb"
)

// ResolvedRelease is the outcome of picking an official release date for a
// game out of its per-platform release-date entries.
type ResolvedRelease struct {
	OfficialDate *time.Time
	Human        *string
	Status       *string
}

const fullReleaseStatus = "full release"

// withinYear is the window used to match a release-date entry against the
// game's first_release_date.
const withinYear = 365 * 24 * time.Hour

// ResolveReleaseDate picks the official release date plus its human label and
// status for a game. Already-released games trust first_release_date and only
// borrow labels from the nearest matching entry; upcoming games trust the
// earliest dated entry. Branch order matters: the first match wins.
func ResolveReleaseDate(dates []igdb.ReleaseDate, firstRelease int64, now time.Time) ResolvedRelease {
	var res ResolvedRelease

	if firstRelease > 0 && time.Unix(firstRelease, 0).Before(now) {
		official := time.Unix(firstRelease, 0).UTC()
		res.OfficialDate = &official

		// Prefer the "Full Release" entry closest to first_release_date for
		// the display labels.
		if match := matchingFullRelease(dates, firstRelease); match != nil {
			res.Human = strptr(match.Human)
			res.Status = statusName(match)
			return res
		}
		if earliest := earliestDated(dates, false); earliest != nil {
			res.Human = strptr(earliest.Human)
			res.Status = statusName(earliest)
		}
		return res
	}

	// Upcoming game: the entries are the authority.
	if earliest := earliestDated(dates, true); earliest != nil {
		official := time.Unix(earliest.Date, 0).UTC()
		res.OfficialDate = &official
		res.Human = strptr(earliest.Human)
		res.Status = statusName(earliest)
		return res
	}
	if earliest := earliestDated(dates, false); earliest != nil {
		official := time.Unix(earliest.Date, 0).UTC()
		res.OfficialDate = &official
		res.Human = strptr(earliest.Human)
		res.Status = statusName(earliest)
		return res
	}
	if firstRelease > 0 {
		official := time.Unix(firstRelease, 0).UTC()
		res.OfficialDate = &official
	}
	return res
}

// matchingFullRelease finds a positively dated "Full Release" entry within a
// year of firstRelease.
func matchingFullRelease(dates []igdb.ReleaseDate, firstRelease int64) *igdb.ReleaseDate {
	for i := range dates {
		d := &dates[i]
		if d.Date <= 0 || !isFullRelease(d) {
			continue
		}
		diff := time.Duration(d.Date-firstRelease) * time.Second
		if diff < 0 {
			diff = -diff
		}
		if diff <= withinYear {
			return d
		}
	}
	return nil
}

// earliestDated returns the entry with the smallest positive date, optionally
// restricted to "Full Release" entries.
func earliestDated(dates []igdb.ReleaseDate, fullOnly bool) *igdb.ReleaseDate {
	var best *igdb.ReleaseDate
	for i := range dates {
		d := &dates[i]
		if d.Date <= 0 {
			continue
		}
		if fullOnly && !isFullRelease(d) {
			continue
		}
		if best == nil || d.Date < best.Date {
			best = d
		}
	}
	return best
}

func isFullRelease(d *igdb.ReleaseDate) bool {
	return d.Status != nil && strings.EqualFold(d.Status.Name, fullReleaseStatus)
}

func statusName(d *igdb.ReleaseDate) *string {
	if d.Status == nil {
		return nil
	}
	return strptr(d.Status.Name)
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
