package domain

import "time"

// Relationship rows join a game to a reference entity. All are keyed by the
// natural composite key, so re-upserting the same pair overwrites in place.

type GameCompany struct {
	GameID      uint64 `json:"gameId" gorm:"primaryKey;autoIncrement:false"`
	CompanyID   uint64 `json:"companyId" gorm:"primaryKey;autoIncrement:false"`
	IsDeveloper bool   `json:"isDeveloper"`
	IsPublisher bool   `json:"isPublisher"`
}

type GamePlatform struct {
	GameID     uint64 `json:"gameId" gorm:"primaryKey;autoIncrement:false"`
	PlatformID uint64 `json:"platformId" gorm:"primaryKey;autoIncrement:false"`

	ReleaseDate       *time.Time `json:"releaseDate"`
	ReleaseDateHuman  *string    `json:"releaseDateHuman"`
	ReleaseDateStatus *string    `json:"releaseDateStatus"`
}

type GameGenre struct {
	GameID  uint64 `json:"gameId" gorm:"primaryKey;autoIncrement:false"`
	GenreID uint64 `json:"genreId" gorm:"primaryKey;autoIncrement:false"`
}

type GameTheme struct {
	GameID  uint64 `json:"gameId" gorm:"primaryKey;autoIncrement:false"`
	ThemeID uint64 `json:"themeId" gorm:"primaryKey;autoIncrement:false"`
}

type GameCollection struct {
	GameID       uint64 `json:"gameId" gorm:"primaryKey;autoIncrement:false"`
	CollectionID uint64 `json:"collectionId" gorm:"primaryKey;autoIncrement:false"`
}

type GameFranchise struct {
	GameID      uint64 `json:"gameId" gorm:"primaryKey;autoIncrement:false"`
	FranchiseID uint64 `json:"franchiseId" gorm:"primaryKey;autoIncrement:false"`
}

// AgeRating holds one rating per (game, rating organization), e.g. ESRB or
// PEGI.
type AgeRating struct {
	GameID       uint64 `json:"gameId" gorm:"primaryKey;autoIncrement:false"`
	Organization int    `json:"organization" gorm:"primaryKey;autoIncrement:false"`
	RatingValue  int    `json:"ratingValue"`
}
