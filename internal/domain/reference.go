package domain

// Reference entities are shared lookup rows keyed by their IGDB id. They are
// created idempotently before any relationship row referencing them.

type Company struct {
	ID          uint64 `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug"`
	LogoImageID string `json:"logoImageId"`
}

type Platform struct {
	ID           uint64 `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null"`
	Slug         string `json:"slug"`
	Abbreviation string `json:"abbreviation"`
	LogoImageID  string `json:"logoImageId"`
}

type Genre struct {
	ID   uint64 `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug"`
}

type Theme struct {
	ID   uint64 `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug"`
}

type Collection struct {
	ID   uint64 `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug"`
}

type Franchise struct {
	ID   uint64 `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug"`
}
