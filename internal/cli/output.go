package cli

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/mcoot/scorecli/internal/model"
)

// Actions reported by PlayerChange and GameChange
const (
	ActionAdded   = "added"
	ActionDeleted = "deleted"
)

// PlayerChange reports an add-player or delete-player result
type PlayerChange struct {
	Action string       `json:"action"`
	Player model.Player `json:"player"`
}

// GameChange reports an add-score or delete-score result
type GameChange struct {
	Action string     `json:"action"`
	Game   model.Game `json:"game"`
}

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case PlayerChange:
		o.printPlayerChange(v)
	case GameChange:
		o.printGameChange(v)
	case []model.Player:
		o.printPlayers(v)
	case []model.Game:
		o.printGames(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayerChange(c PlayerChange) {
	if c.Action == ActionDeleted {
		o.PrintMessage(fmt.Sprintf("Deleted player: %s.", c.Player.Name))
		return
	}
	o.PrintMessage(fmt.Sprintf("Added player %s.", c.Player.Name))
}

func (o *Output) printGameChange(c GameChange) {
	if c.Action == ActionDeleted {
		o.PrintMessage(fmt.Sprintf("Removed game with id %s.", c.Game.ID))
		return
	}
	o.PrintMessage(fmt.Sprintf("Added game of %s with id: %s", c.Game.Name, c.Game.ID))
}

func (o *Output) printPlayers(players []model.Player) {
	if len(players) == 0 {
		o.PrintMessage("No players recorded.")
		return
	}
	for _, p := range players {
		_, _ = fmt.Fprintln(o.w, p.Name)
	}
}

func (o *Output) printGames(games []model.Game) {
	if len(games) == 0 {
		o.PrintMessage("No games recorded.")
		return
	}

	table := tablewriter.NewWriter(o.w)
	table.SetHeader([]string{"Date", "Game", "Scores", "ID"})
	table.SetAutoWrapText(false)
	for _, g := range games {
		table.Append([]string{g.Date.String(), g.Name, formatScores(g), string(g.ID)})
	}
	table.Render()
}

// formatScores renders scores highest first, ties by name
func formatScores(g model.Game) string {
	names := g.PlayerNames()
	slices.SortStableFunc(names, func(a, b string) int {
		return cmp.Compare(g.Scores[b], g.Scores[a])
	})

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %d", name, g.Scores[name])
	}
	return strings.Join(parts, ", ")
}
