package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/scorecli/internal/dependencies/clock"
	"github.com/mcoot/scorecli/internal/dependencies/ids"
	"github.com/mcoot/scorecli/internal/services/game"
	"github.com/mcoot/scorecli/internal/services/player"
	"github.com/mcoot/scorecli/internal/storage"
	"github.com/mcoot/scorecli/internal/storage/file"
	"github.com/mcoot/scorecli/internal/storage/memory"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// Services
	PlayerService  *player.Service
	GameController *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// SaveDir is the base directory for players.json and games/ (optional)
	// If empty, the process working directory is used
	SaveDir string
	// AtomicWrites replaces files via temp file and rename instead of
	// truncating in place
	AtomicWrites bool
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("file" or "memory")
	// If empty, defaults to "file"
	StorageType string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	switch storageType {
	case StorageTypeFile:
		fileCfg := file.DefaultConfig()
		fileCfg.BaseDir = cfg.SaveDir
		fileCfg.Atomic = cfg.AtomicWrites
		store = file.New(fileCfg)
	case StorageTypeMemory:
		store = memory.New()
	default:
		return nil, errors.New("invalid StorageType: must be 'file' or 'memory'")
	}

	return newWithDependencies(store, clock.New(), ids.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, gen ids.Generator, logger *slog.Logger) *App {
	playerService := player.New(store, logger)
	gameController := game.NewController(store, playerService, clk, gen, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		IDs:            gen,
		PlayerService:  playerService,
		GameController: gameController,
	}
}
