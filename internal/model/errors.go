package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Player errors
	ErrPlayerExists   = errors.New("player already exists")
	ErrPlayerNotFound = errors.New("player does not exist")
	ErrNoPlayersData  = errors.New("no players' data found")
	ErrInvalidName    = errors.New("invalid name")

	// Game errors
	ErrGameNotFound  = errors.New("game not found")
	ErrInvalidGameID = errors.New("impossible to decode id")
	ErrNoScores      = errors.New("no scores provided")
	ErrInvalidScore  = errors.New("error parsing scores, the input format is player::score")
	ErrInvalidDate   = errors.New("error parsing date, the input format is YYYY-MM-DD")
)

// GameNotFoundError reports a game id absent from every games file.
// It matches ErrGameNotFound under errors.Is.
type GameNotFoundError struct {
	ID GameID
}

func (e GameNotFoundError) Error() string {
	return fmt.Sprintf("game with id %s not found", e.ID)
}

func (e GameNotFoundError) Is(target error) bool {
	return target == ErrGameNotFound
}
