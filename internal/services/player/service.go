package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mcoot/scorecli/internal/model"
	"github.com/mcoot/scorecli/internal/storage"
)

// FileName is the document holding the Players collection
const FileName = "players.json"

// Service manages the players collection
type Service struct {
	storage storage.Store
	logger  *slog.Logger
}

// New creates a new PlayerService
func New(storage storage.Store, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "player-service")),
	}
}

// AddPlayer registers a new player. The players file is created on first use.
func (s *Service) AddPlayer(ctx context.Context, name string) (model.Player, error) {
	player, err := model.NewPlayer(name)
	if err != nil {
		return model.Player{}, err
	}

	doc, err := s.storage.Open(ctx, FileName)
	if err != nil {
		return model.Player{}, err
	}
	defer s.close(doc)

	empty, err := doc.IsEmpty()
	if err != nil {
		return model.Player{}, err
	}

	players := model.NewPlayers()
	if !empty {
		if err := doc.Load(&players); err != nil {
			return model.Player{}, err
		}
		if players == nil {
			players = model.NewPlayers()
		}
	}
	if err := players.Add(player); err != nil {
		return model.Player{}, err
	}
	if err := doc.Save(players); err != nil {
		return model.Player{}, err
	}

	s.logger.Info("player added",
		slog.String("player", player.Name),
		slog.String("path", doc.Path()),
	)
	return player, nil
}

// DeletePlayer removes a player. A missing or empty players file means there
// is nothing to delete and is never created as a side effect.
func (s *Service) DeletePlayer(ctx context.Context, name string) (model.Player, error) {
	player, err := model.NewPlayer(name)
	if err != nil {
		return model.Player{}, err
	}

	doc, players, err := s.openExisting(ctx)
	if err != nil {
		return model.Player{}, err
	}
	defer s.close(doc)

	if err := players.Remove(player); err != nil {
		return model.Player{}, err
	}
	if err := doc.Save(players); err != nil {
		return model.Player{}, err
	}

	s.logger.Info("player deleted",
		slog.String("player", player.Name),
		slog.String("path", doc.Path()),
	)
	return player, nil
}

// ListPlayers returns every player sorted by name. No players file yields an empty list.
func (s *Service) ListPlayers(ctx context.Context) ([]model.Player, error) {
	doc, players, err := s.openExisting(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNoPlayersData) {
			return []model.Player{}, nil
		}
		return nil, err
	}
	defer s.close(doc)

	return players.Sorted(), nil
}

// RequireExisting fails with ErrPlayerNotFound naming the first absent player,
// checking names in sorted order
func (s *Service) RequireExisting(ctx context.Context, names []string) error {
	doc, players, err := s.openExisting(ctx)
	if err != nil {
		return err
	}
	defer s.close(doc)

	sorted := slices.Clone(names)
	slices.Sort(sorted)
	for _, name := range sorted {
		if !players.Exists(name) {
			return fmt.Errorf("%w: %s", model.ErrPlayerNotFound, name)
		}
	}
	return nil
}

// openExisting opens and loads the players file, mapping an absent or empty
// file to ErrNoPlayersData. The caller closes the returned document.
func (s *Service) openExisting(ctx context.Context) (storage.Document, model.Players, error) {
	doc, err := s.storage.OpenExisting(ctx, FileName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, model.ErrNoPlayersData
		}
		return nil, nil, err
	}

	empty, err := doc.IsEmpty()
	if err != nil {
		s.close(doc)
		return nil, nil, err
	}
	if empty {
		s.close(doc)
		return nil, nil, model.ErrNoPlayersData
	}

	players := model.NewPlayers()
	if err := doc.Load(&players); err != nil {
		s.close(doc)
		return nil, nil, err
	}
	if players == nil {
		players = model.NewPlayers()
	}
	return doc, players, nil
}

func (s *Service) close(doc storage.Document) {
	if err := doc.Close(); err != nil {
		s.logger.Warn("failed to close document",
			slog.String("path", doc.Path()),
			slog.String("error", err.Error()),
		)
	}
}
