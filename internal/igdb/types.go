package igdb

// Raw IGDB record shapes, as returned by the v4 API with the expanded field
// lists the pipeline requests. These are never persisted as-is; the ingest
// package normalizes them into domain rows.

// Game is one raw catalog record from the "games" collection.
type Game struct {
	ID               uint64  `json:"id"`
	Name             string  `json:"name"`
	Slug             string  `json:"slug"`
	Summary          string  `json:"summary"`
	Storyline        string  `json:"storyline"`
	FirstReleaseDate int64   `json:"first_release_date"` // epoch seconds
	TotalRating      float64 `json:"total_rating"`       // 0-100
	TotalRatingCount int     `json:"total_rating_count"`
	GameType         int     `json:"game_type"`
	Hypes            int     `json:"hypes"`

	Cover             *Cover            `json:"cover"`
	Artworks          []Artwork         `json:"artworks"`
	Screenshots       []Screenshot      `json:"screenshots"`
	Videos            []Video           `json:"videos"`
	Websites          []Website         `json:"websites"`
	InvolvedCompanies []InvolvedCompany `json:"involved_companies"`
	Platforms         []Platform        `json:"platforms"`
	Genres            []Ref             `json:"genres"`
	Themes            []Ref             `json:"themes"`
	Collections       []Ref             `json:"collections"`
	Franchises        []Ref             `json:"franchises"`
	ReleaseDates      []ReleaseDate     `json:"release_dates"`
	AgeRatings        []AgeRating       `json:"age_ratings"`
}

// Ref is the common {id, name, slug} shape shared by genres, themes,
// collections and franchises.
type Ref struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Cover struct {
	ID      uint64 `json:"id"`
	ImageID string `json:"image_id"`
}

type Artwork struct {
	ID          uint64 `json:"id"`
	ImageID     string `json:"image_id"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ArtworkType int    `json:"artwork_type"` // 1 concept art, 2 artwork, 3 screenshot
}

type Screenshot struct {
	ID      uint64 `json:"id"`
	ImageID string `json:"image_id"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type Video struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	VideoID string `json:"video_id"`
}

type Website struct {
	ID   uint64 `json:"id"`
	Type int    `json:"type"`
	URL  string `json:"url"`
}

type InvolvedCompany struct {
	ID        uint64  `json:"id"`
	Company   Company `json:"company"`
	Developer bool    `json:"developer"`
	Publisher bool    `json:"publisher"`
}

type Company struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Logo *struct {
		ImageID string `json:"image_id"`
	} `json:"logo"`
}

type Platform struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Abbreviation string `json:"abbreviation"`
	PlatformLogo *struct {
		ImageID string `json:"image_id"`
	} `json:"platform_logo"`
}

type ReleaseDate struct {
	ID       uint64 `json:"id"`
	Date     int64  `json:"date"` // epoch seconds, 0 when unannounced
	Human    string `json:"human"`
	Platform uint64 `json:"platform"`
	Status   *struct {
		ID   uint64 `json:"id"`
		Name string `json:"name"` // e.g. "Full Release", "Early Access"
	} `json:"status"`
}

type AgeRating struct {
	ID           uint64 `json:"id"`
	Organization int    `json:"organization"`
	RatingValue  int    `json:"rating_category"`
}

// PopularityPrimitive is one raw popularity signal for a game. Fetched fresh
// per scoring run, never persisted.
type PopularityPrimitive struct {
	GameID         uint64  `json:"game_id"`
	PopularityType int     `json:"popularity_type"`
	Value          float64 `json:"value"`
}
