package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gameshelf/gameshelf/internal/domain"
	"github.com/gameshelf/gameshelf/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type GameHandler struct {
	gameService *service.GameService
	logger      *logrus.Logger
}

func NewGameHandler(gameService *service.GameService, logger *logrus.Logger) *GameHandler {
	return &GameHandler{gameService: gameService, logger: logger}
}

type GameResponse struct {
	ID                  uint64              `json:"id"`
	Name                string              `json:"name"`
	Slug                string              `json:"slug"`
	Summary             string              `json:"summary,omitempty"`
	Storyline           string              `json:"storyline,omitempty"`
	CoverImageID        string              `json:"coverImageId,omitempty"`
	Popularity          float64             `json:"popularity"`
	OfficialReleaseDate *time.Time          `json:"officialReleaseDate"`
	ReleaseDateHuman    *string             `json:"releaseDateHuman"`
	ReleaseDateStatus   *string             `json:"releaseDateStatus"`
	IsReleased          bool                `json:"isReleased"`
	IsNSFW              bool                `json:"isNsfw"`
	Rating              float64             `json:"rating"`
	RatingCount         int                 `json:"ratingCount"`
	Artworks            []string            `json:"artworks"`
	Screenshots         []string            `json:"screenshots"`
	Videos              []domain.GameVideo  `json:"videos"`
	Websites            domain.GameWebsites `json:"websites"`
}

type GamesResponse struct {
	Games []GameResponse `json:"games"`
}

func newGameResponse(g *domain.Game) GameResponse {
	resp := GameResponse{
		ID:                  g.ID,
		Name:                g.Name,
		Slug:                g.Slug,
		Summary:             g.Summary,
		Storyline:           g.Storyline,
		CoverImageID:        g.CoverImageID,
		Popularity:          g.Popularity,
		OfficialReleaseDate: g.OfficialReleaseDate,
		ReleaseDateHuman:    g.ReleaseDateHuman,
		ReleaseDateStatus:   g.ReleaseDateStatus,
		IsReleased:          g.IsReleased,
		IsNSFW:              g.IsNSFW,
		Rating:              g.Rating,
		RatingCount:         g.RatingCount,
	}
	json.Unmarshal(g.Artworks, &resp.Artworks)
	json.Unmarshal(g.Screenshots, &resp.Screenshots)
	json.Unmarshal(g.Videos, &resp.Videos)
	json.Unmarshal(g.Websites, &resp.Websites)
	return resp
}

func (h *GameHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	game, err := h.gameService.GetBySlug(r.Context(), slug)
	if errors.Is(err, domain.ErrGameNotFound) {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("slug", slug).Error("game lookup failed")
		http.Error(w, "Failed to get game", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newGameResponse(game))
}

func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	games, err := h.gameService.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("game list failed")
		http.Error(w, "Failed to list games", http.StatusInternalServerError)
		return
	}

	resp := GamesResponse{Games: make([]GameResponse, len(games))}
	for i, g := range games {
		resp.Games[i] = newGameResponse(g)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
