package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/gameshelf/gameshelf/internal/domain"
	"gorm.io/gorm"
)

// GameBuilder builds a domain.Game row with sensible defaults.
type GameBuilder struct {
	game domain.Game
}

func NewGameBuilder() *GameBuilder {
	return &GameBuilder{
		game: domain.Game{
			ID:          1,
			Name:        "Test Game",
			Slug:        "test-game",
			Popularity:  100,
			Rating:      80,
			RatingCount: 20,
			IsReleased:  true,
		},
	}
}

func (b *GameBuilder) WithID(id uint64) *GameBuilder {
	b.game.ID = id
	return b
}

func (b *GameBuilder) WithName(name string) *GameBuilder {
	b.game.Name = name
	return b
}

func (b *GameBuilder) WithSlug(slug string) *GameBuilder {
	b.game.Slug = slug
	return b
}

func (b *GameBuilder) WithPopularity(popularity float64) *GameBuilder {
	b.game.Popularity = popularity
	return b
}

func (b *GameBuilder) WithUpdatedAt(updatedAt time.Time) *GameBuilder {
	b.game.UpdatedAt = updatedAt
	return b
}

// Value returns the built game without persisting it.
func (b *GameBuilder) Value() *domain.Game {
	g := b.game
	return &g
}

// Build persists the game and returns it.
func (b *GameBuilder) Build(t *testing.T, db *gorm.DB) *domain.Game {
	t.Helper()

	g := b.game
	if err := db.Create(&g).Error; err != nil {
		t.Fatalf("failed to create game fixture: %v", err)
	}
	return &g
}

// SeedCompanies inserts n companies with ids 1..n.
func SeedCompanies(t *testing.T, db *gorm.DB, n int) []*domain.Company {
	t.Helper()

	companies := make([]*domain.Company, n)
	for i := range companies {
		companies[i] = &domain.Company{
			ID:   uint64(i + 1),
			Name: fmt.Sprintf("Company %d", i+1),
			Slug: fmt.Sprintf("company-%d", i+1),
		}
	}
	if err := db.Create(companies).Error; err != nil {
		t.Fatalf("failed to seed companies: %v", err)
	}
	return companies
}
