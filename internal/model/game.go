package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// ScoreSeparator splits a score token into player name and score
const ScoreSeparator = "::"

// GameID uniquely identifies a recorded game. It is the canonical string form of a UUID.
type GameID string

// NewGameID wraps a generated UUID
func NewGameID(id uuid.UUID) GameID {
	return GameID(id.String())
}

// ParseGameID decodes user input into a GameID
func ParseGameID(s string) (GameID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w %s", ErrInvalidGameID, s)
	}
	return NewGameID(id), nil
}

// Game is one recorded play-through. It is immutable once created.
type Game struct {
	ID     GameID         `json:"id"`
	Name   string         `json:"name"`
	Scores map[string]int `json:"scores"`
	Date   civil.Date     `json:"date"`
}

// NewGame validates the name and scores and builds a Game.
// Whether the scored players exist is checked by the caller.
func NewGame(id GameID, name string, scores map[string]int, date civil.Date) (*Game, error) {
	name, err := NormalizeGameName(name)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, ErrNoScores
	}
	if !date.IsValid() {
		return nil, ErrInvalidDate
	}

	copied := make(map[string]int, len(scores))
	for player, score := range scores {
		if player == "" || score < 0 {
			return nil, ErrInvalidScore
		}
		copied[player] = score
	}

	return &Game{
		ID:     id,
		Name:   name,
		Scores: copied,
		Date:   date,
	}, nil
}

// PlayerNames returns the scored player names in sorted order
func (g *Game) PlayerNames() []string {
	names := make([]string, 0, len(g.Scores))
	for name := range g.Scores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeGameName trims the name and rejects anything that would not map
// to exactly one file in the games directory
func NormalizeGameName(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", fmt.Errorf("%w: game name must not be empty", ErrInvalidName)
	case strings.HasPrefix(name, "."):
		return "", fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return name, nil
}

// ParseScore parses a single "player::score" token. The player name is
// trimmed the same way NewPlayer trims it.
func ParseScore(token string) (string, int, error) {
	parts := strings.Split(token, ScoreSeparator)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidScore, token)
	}
	player := strings.TrimSpace(parts[0])
	if player == "" {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidScore, token)
	}

	score, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || score < 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidScore, token)
	}
	return player, score, nil
}

// ParseScores parses every token. A player named twice keeps the last score.
func ParseScores(tokens []string) (map[string]int, error) {
	scores := make(map[string]int, len(tokens))
	for _, token := range tokens {
		player, score, err := ParseScore(token)
		if err != nil {
			return nil, err
		}
		scores[player] = score
	}
	return scores, nil
}

// ParseDate parses a YYYY-MM-DD date, falling back to today when s is empty
func ParseDate(s string, today civil.Date) (civil.Date, error) {
	if s == "" {
		return today, nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// Games is the collection persisted in one games/<name>.json file, keyed by id
type Games map[GameID]Game

// NewGames creates a collection holding the given games
func NewGames(games ...Game) Games {
	g := make(Games, len(games))
	for _, game := range games {
		g[game.ID] = game
	}
	return g
}

// Add inserts the game keyed by its id. Ids are generated per game, so no
// duplicate check is made.
func (g Games) Add(game Game) {
	g[game.ID] = game
}

// Delete removes and returns the game with the given id
func (g Games) Delete(id GameID) (Game, error) {
	game, ok := g[id]
	if !ok {
		return Game{}, GameNotFoundError{ID: id}
	}
	delete(g, id)
	return game, nil
}

// Merge copies every game from other, overwriting on id collision
func (g Games) Merge(other Games) {
	for id, game := range other {
		g[id] = game
	}
}

// OrderByDate returns the games sorted by date ascending, then by id
func (g Games) OrderByDate() []Game {
	result := make([]Game, 0, len(g))
	for _, game := range g {
		result = append(result, game)
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})
	return result
}
