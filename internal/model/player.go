package model

import (
	"fmt"
	"sort"
	"strings"
)

// Player is a named participant. The name is its identity.
type Player struct {
	Name string `json:"name"`
}

// NewPlayer validates the name and returns a Player
func NewPlayer(name string) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, fmt.Errorf("%w: player name must not be empty", ErrInvalidName)
	}
	if strings.Contains(name, ScoreSeparator) {
		return Player{}, fmt.Errorf("%w: player name %q contains %q", ErrInvalidName, name, ScoreSeparator)
	}
	return Player{Name: name}, nil
}

// Players is the collection persisted in players.json, keyed by player name
type Players map[string]Player

// NewPlayers creates a collection holding the given players
func NewPlayers(players ...Player) Players {
	p := make(Players, len(players))
	for _, player := range players {
		p[player.Name] = player
	}
	return p
}

// Add inserts the player, failing if the name is already taken
func (p Players) Add(player Player) error {
	if p.Exists(player.Name) {
		return fmt.Errorf("%w: %s", ErrPlayerExists, player.Name)
	}
	p[player.Name] = player
	return nil
}

// Remove deletes the player, failing if the name is absent
func (p Players) Remove(player Player) error {
	if !p.Exists(player.Name) {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, player.Name)
	}
	delete(p, player.Name)
	return nil
}

// Exists reports whether a player with this name is in the collection
func (p Players) Exists(name string) bool {
	_, ok := p[name]
	return ok
}

// Sorted returns the players ordered by name
func (p Players) Sorted() []Player {
	result := make([]Player, 0, len(p))
	for _, player := range p {
		result = append(result, player)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
