package game

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mcoot/scorecli/internal/dependencies/clock"
	"github.com/mcoot/scorecli/internal/dependencies/ids"
	"github.com/mcoot/scorecli/internal/model"
	"github.com/mcoot/scorecli/internal/services/player"
	"github.com/mcoot/scorecli/internal/storage"
)

const (
	// Dir is the directory holding one Games document per game name
	Dir = "games"

	fileExt = ".json"
)

// AddScoreRequest is one add-score invocation as typed on the command line
type AddScoreRequest struct {
	GameName string
	Scores   []string // player::score tokens
	Date     string   // YYYY-MM-DD, empty for today
}

// ListFilter narrows ListGames
type ListFilter struct {
	// GameName restricts the listing to one game file when set
	GameName string
}

// Controller records, deletes and lists game score sheets
type Controller struct {
	storage       storage.Store
	playerService *player.Service
	clock         clock.Clock
	ids           ids.Generator
	logger        *slog.Logger
}

// NewController creates a new GameController
func NewController(
	storage storage.Store,
	playerService *player.Service,
	clock clock.Clock,
	ids ids.Generator,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:       storage,
		playerService: playerService,
		clock:         clock,
		ids:           ids,
		logger:        logger,
	}
}

// AddScore records a new game. Every scored player must already exist; that is
// checked before any games file is opened, so a failed check writes nothing.
func (c *Controller) AddScore(ctx context.Context, req AddScoreRequest) (*model.Game, error) {
	scores, err := model.ParseScores(req.Scores)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, model.ErrNoScores
	}

	date, err := model.ParseDate(req.Date, clock.Today(c.clock))
	if err != nil {
		return nil, err
	}

	game, err := model.NewGame(model.NewGameID(c.ids.New()), req.GameName, scores, date)
	if err != nil {
		return nil, err
	}

	if err := c.playerService.RequireExisting(ctx, game.PlayerNames()); err != nil {
		return nil, err
	}

	doc, err := c.storage.Open(ctx, Dir, fileName(game.Name))
	if err != nil {
		return nil, err
	}
	defer c.close(doc)

	games, err := c.load(doc)
	if err != nil {
		return nil, err
	}
	games.Add(*game)
	if err := doc.Save(games); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game recorded",
		slog.String("game_id", string(game.ID)),
		slog.String("game_name", game.Name),
		slog.String("date", game.Date.String()),
		slog.Int("player_count", len(game.Scores)),
	)
	return game, nil
}

// DeleteScore removes the game with the given id from whichever games file
// holds it and returns the removed game
func (c *Controller) DeleteScore(ctx context.Context, rawID string) (*model.Game, error) {
	id, err := model.ParseGameID(rawID)
	if err != nil {
		return nil, err
	}

	names, err := c.gameFiles(ctx)
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		game, found, err := c.deleteFrom(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if found {
			c.logger.Info("game deleted",
				slog.String("game_id", string(id)),
				slog.String("game_name", game.Name),
			)
			return game, nil
		}
	}

	return nil, model.GameNotFoundError{ID: id}
}

// ListGames merges every games file (or the one selected by the filter) and
// returns the games ordered by date, then id
func (c *Controller) ListGames(ctx context.Context, filter ListFilter) ([]model.Game, error) {
	var names []string
	if filter.GameName != "" {
		name, err := model.NormalizeGameName(filter.GameName)
		if err != nil {
			return nil, err
		}
		names = []string{fileName(name)}
	} else {
		var err error
		names, err = c.gameFiles(ctx)
		if err != nil {
			return nil, err
		}
	}

	all := model.NewGames()
	for _, name := range names {
		games, err := c.loadExisting(ctx, name)
		if err != nil {
			return nil, err
		}
		all.Merge(games)
	}
	return all.OrderByDate(), nil
}

func (c *Controller) deleteFrom(ctx context.Context, name string, id model.GameID) (*model.Game, bool, error) {
	doc, err := c.storage.OpenExisting(ctx, Dir, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer c.close(doc)

	games, err := c.load(doc)
	if err != nil {
		return nil, false, err
	}

	game, err := games.Delete(id)
	if errors.Is(err, model.ErrGameNotFound) {
		return nil, false, nil
	}
	if err := doc.Save(games); err != nil {
		return nil, false, err
	}
	return &game, true, nil
}

// loadExisting loads one games file without creating it. A missing file is an
// empty collection.
func (c *Controller) loadExisting(ctx context.Context, name string) (model.Games, error) {
	doc, err := c.storage.OpenExisting(ctx, Dir, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.NewGames(), nil
		}
		return nil, err
	}
	defer c.close(doc)

	return c.load(doc)
}

// load reads a games document, treating a zero-byte file as an empty collection
func (c *Controller) load(doc storage.Document) (model.Games, error) {
	empty, err := doc.IsEmpty()
	if err != nil {
		return nil, err
	}
	games := model.NewGames()
	if empty {
		return games, nil
	}
	if err := doc.Load(&games); err != nil {
		return nil, err
	}
	if games == nil {
		games = model.NewGames()
	}
	return games, nil
}

// gameFiles lists the JSON documents in the games directory
func (c *Controller) gameFiles(ctx context.Context) ([]string, error) {
	entries, err := c.storage.List(ctx, Dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry, fileExt) && !strings.HasPrefix(entry, ".") {
			names = append(names, entry)
		}
	}
	return names, nil
}

func (c *Controller) close(doc storage.Document) {
	if err := doc.Close(); err != nil {
		c.logger.Warn("failed to close document",
			slog.String("path", doc.Path()),
			slog.String("error", err.Error()),
		)
	}
}

func fileName(gameName string) string {
	return gameName + fileExt
}
