package domain

import "errors"

var (
	// ErrGameNotFound means the game is neither in the store nor, after an
	// on-demand fetch, known to IGDB.
	ErrGameNotFound = errors.New("game not found")
)
