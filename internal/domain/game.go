package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Game is the normalized row for one IGDB game. The ID is the IGDB id, so
// re-ingesting the same game always lands on the same row.
type Game struct {
	ID           uint64 `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null"`
	Slug         string `json:"slug" gorm:"uniqueIndex;not null"`
	Summary      string `json:"summary"`
	Storyline    string `json:"storyline"`
	CoverImageID string `json:"coverImageId"`

	// Popularity is the latest weighted score from popularity primitives, or
	// the rating-based fallback when no primitives could be fetched.
	Popularity float64 `json:"popularity" gorm:"index"`

	OfficialReleaseDate *time.Time `json:"officialReleaseDate"`
	ReleaseDateHuman    *string    `json:"releaseDateHuman"`
	ReleaseDateStatus   *string    `json:"releaseDateStatus"`
	IsReleased          bool       `json:"isReleased"`
	IsNSFW              bool       `json:"isNsfw"`

	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`

	Artworks    datatypes.JSON `json:"artworks" gorm:"type:jsonb"`    // []string image ids, ranked hero-first
	Screenshots datatypes.JSON `json:"screenshots" gorm:"type:jsonb"` // []string image ids
	Videos      datatypes.JSON `json:"videos" gorm:"type:jsonb"`      // []GameVideo
	Websites    datatypes.JSON `json:"websites" gorm:"type:jsonb"`    // GameWebsites

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"` // drives the staleness refresh
}

// GameVideo is one entry of the Videos jsonb column.
type GameVideo struct {
	Name    string `json:"name"`
	VideoID string `json:"videoId"` // e.g. a YouTube id
}

// GameWebsites is the Websites jsonb column: the official site plus store
// links keyed by IGDB website type id.
type GameWebsites struct {
	Official string         `json:"official,omitempty"`
	Stores   map[int]string `json:"stores,omitempty"`
}
