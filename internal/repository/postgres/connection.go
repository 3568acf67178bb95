package postgres

import (
	"github.com/gameshelf/gameshelf/internal/domain"
	"github.com/gameshelf/gameshelf/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Game{},
		&domain.Company{},
		&domain.Platform{},
		&domain.Genre{},
		&domain.Theme{},
		&domain.Collection{},
		&domain.Franchise{},
		&domain.GameCompany{},
		&domain.GamePlatform{},
		&domain.GameGenre{},
		&domain.GameTheme{},
		&domain.GameCollection{},
		&domain.GameFranchise{},
		&domain.AgeRating{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Game:         NewGameRepository(db),
		Reference:    NewReferenceRepository(db),
		Relationship: NewRelationshipRepository(db),
	}
}
