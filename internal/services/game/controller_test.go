package game

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scorecli/internal/dependencies/mocks"
	"github.com/mcoot/scorecli/internal/model"
	"github.com/mcoot/scorecli/internal/services/player"
	"github.com/mcoot/scorecli/internal/storage"
	"github.com/mcoot/scorecli/internal/storage/file"
	"github.com/mcoot/scorecli/internal/storage/memory"
	"github.com/mcoot/scorecli/internal/testutil"
)

const (
	idOne   = "11111111-1111-4111-8111-111111111111"
	idTwo   = "22222222-2222-4222-8222-222222222222"
	idThree = "33333333-3333-4333-8333-333333333333"
)

type ControllerSuite struct {
	suite.Suite
	storage       *memory.Storage
	playerService *player.Service
	clock         *mocks.MockClock
	ids           *mocks.MockIDs
	controller    *Controller
	ctx           context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	logger := testutil.NopLogger()
	s.playerService = player.New(s.storage, logger)
	s.clock = mocks.NewMockClockOn(civil.Date{Year: 2025, Month: 8, Day: 7})
	s.ids = mocks.NewMockIDs()
	s.controller = NewController(s.storage, s.playerService, s.clock, s.ids, logger)
	s.ctx = context.Background()
}

func (s *ControllerSuite) addPlayers(names ...string) {
	for _, name := range names {
		_, err := s.playerService.AddPlayer(s.ctx, name)
		s.Require().NoError(err)
	}
}

func (s *ControllerSuite) addScore(id, name, date string, scores ...string) *model.Game {
	s.ids.Queue(id)
	game, err := s.controller.AddScore(s.ctx, AddScoreRequest{GameName: name, Scores: scores, Date: date})
	s.Require().NoError(err)
	return game
}

// AddScore tests

func (s *ControllerSuite) TestAddScoreCreatesGamesFile() {
	s.addPlayers("alice", "bob")

	game := s.addScore(idOne, "catan", "2025-01-01", "alice::10", "bob::20")

	s.Equal(model.GameID(idOne), game.ID)
	s.Equal("catan", game.Name)
	s.Equal(map[string]int{"alice": 10, "bob": 20}, game.Scores)
	s.Equal(civil.Date{Year: 2025, Month: 1, Day: 1}, game.Date)

	data, ok := s.storage.Get(Dir, "catan.json")
	s.Require().True(ok)
	s.JSONEq(`{
		"11111111-1111-4111-8111-111111111111": {
			"id": "11111111-1111-4111-8111-111111111111",
			"name": "catan",
			"scores": {"alice": 10, "bob": 20},
			"date": "2025-01-01"
		}
	}`, string(data))
}

func (s *ControllerSuite) TestAddScoreAppendsToExistingFile() {
	s.addPlayers("alice")
	s.addScore(idOne, "catan", "2025-01-01", "alice::10")
	s.addScore(idTwo, "catan", "2025-01-02", "alice::12")

	games, err := s.controller.ListGames(s.ctx, ListFilter{GameName: "catan"})
	s.Require().NoError(err)
	s.Len(games, 2)
}

func (s *ControllerSuite) TestAddScoreDefaultsToToday() {
	s.addPlayers("alice")

	game := s.addScore(idOne, "catan", "", "alice::10")
	s.Equal(civil.Date{Year: 2025, Month: 8, Day: 7}, game.Date)
}

func (s *ControllerSuite) TestAddScoreTodayFollowsClock() {
	s.addPlayers("alice")
	s.clock.Advance(24 * time.Hour)

	game := s.addScore(idOne, "catan", "", "alice::10")
	s.Equal(civil.Date{Year: 2025, Month: 8, Day: 8}, game.Date)
}

func (s *ControllerSuite) TestAddScoreUnknownPlayerWritesNothing() {
	s.addPlayers("alice")

	_, err := s.controller.AddScore(s.ctx, AddScoreRequest{
		GameName: "catan",
		Scores:   []string{"alice::10", "bob::20"},
	})
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.Contains(err.Error(), "bob")

	_, ok := s.storage.Get(Dir, "catan.json")
	s.False(ok)
}

func (s *ControllerSuite) TestAddScoreNoPlayersData() {
	_, err := s.controller.AddScore(s.ctx, AddScoreRequest{
		GameName: "catan",
		Scores:   []string{"alice::10"},
	})
	s.ErrorIs(err, model.ErrNoPlayersData)

	_, ok := s.storage.Get(Dir, "catan.json")
	s.False(ok)
}

func (s *ControllerSuite) TestAddScoreRequiresScores() {
	s.addPlayers("alice")

	_, err := s.controller.AddScore(s.ctx, AddScoreRequest{GameName: "catan"})
	s.ErrorIs(err, model.ErrNoScores)
}

func (s *ControllerSuite) TestAddScoreMalformedToken() {
	s.addPlayers("alice")

	_, err := s.controller.AddScore(s.ctx, AddScoreRequest{GameName: "catan", Scores: []string{"alice:10"}})
	s.ErrorIs(err, model.ErrInvalidScore)
}

func (s *ControllerSuite) TestAddScoreMalformedDate() {
	s.addPlayers("alice")

	_, err := s.controller.AddScore(s.ctx, AddScoreRequest{
		GameName: "catan",
		Scores:   []string{"alice::10"},
		Date:     "impossible-to-parse",
	})
	s.ErrorIs(err, model.ErrInvalidDate)
}

func (s *ControllerSuite) TestAddScoreCorruptGamesFile() {
	s.addPlayers("alice")
	s.storage.Put([]byte("not json"), Dir, "catan.json")

	_, err := s.controller.AddScore(s.ctx, AddScoreRequest{GameName: "catan", Scores: []string{"alice::10"}})
	s.ErrorIs(err, storage.ErrDecode)

	data, _ := s.storage.Get(Dir, "catan.json")
	s.Equal("not json", string(data))
}

// DeleteScore tests

func (s *ControllerSuite) TestDeleteScore() {
	s.addPlayers("alice")
	s.addScore(idOne, "catan", "2025-01-01", "alice::10")
	s.addScore(idTwo, "chess", "2025-01-01", "alice::1")

	deleted, err := s.controller.DeleteScore(s.ctx, idTwo)
	s.Require().NoError(err)
	s.Equal(model.GameID(idTwo), deleted.ID)
	s.Equal("chess", deleted.Name)

	data, _ := s.storage.Get(Dir, "chess.json")
	s.JSONEq(`{}`, string(data))

	_, err = s.controller.DeleteScore(s.ctx, idTwo)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestDeleteScoreUnknownID() {
	s.addPlayers("alice")
	s.addScore(idOne, "catan", "2025-01-01", "alice::10")
	before, _ := s.storage.Get(Dir, "catan.json")

	_, err := s.controller.DeleteScore(s.ctx, idThree)
	s.ErrorIs(err, model.ErrGameNotFound)
	s.EqualError(err, "game with id "+idThree+" not found")

	after, _ := s.storage.Get(Dir, "catan.json")
	s.Equal(string(before), string(after))
}

func (s *ControllerSuite) TestDeleteScoreMalformedID() {
	_, err := s.controller.DeleteScore(s.ctx, "game-id")
	s.ErrorIs(err, model.ErrInvalidGameID)
}

func (s *ControllerSuite) TestDeleteScoreNoGamesDirectory() {
	_, err := s.controller.DeleteScore(s.ctx, idOne)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestDeleteScoreCorruptFile() {
	s.storage.Put([]byte("{oops"), Dir, "broken.json")

	_, err := s.controller.DeleteScore(s.ctx, idOne)
	s.ErrorIs(err, storage.ErrDecode)
}

// ListGames tests

func (s *ControllerSuite) TestListGamesOrderedByDate() {
	s.addPlayers("alice", "bob")
	s.addScore(idOne, "catan", "2025-08-07", "alice::10")
	s.addScore(idTwo, "chess", "2025-01-01", "bob::1")
	s.addScore(idThree, "catan", "2025-01-01", "bob::3")

	games, err := s.controller.ListGames(s.ctx, ListFilter{})
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(model.GameID(idTwo), games[0].ID)
	s.Equal(model.GameID(idThree), games[1].ID)
	s.Equal(model.GameID(idOne), games[2].ID)
}

func (s *ControllerSuite) TestListGamesFilterByName() {
	s.addPlayers("alice")
	s.addScore(idOne, "catan", "2025-08-07", "alice::10")
	s.addScore(idTwo, "chess", "2025-01-01", "alice::1")

	games, err := s.controller.ListGames(s.ctx, ListFilter{GameName: "chess"})
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal("chess", games[0].Name)
}

func (s *ControllerSuite) TestAddScoreRejectsDotPrefixedName() {
	s.addPlayers("alice")

	_, err := s.controller.AddScore(s.ctx, AddScoreRequest{GameName: ".secret", Scores: []string{"alice::3"}})
	s.ErrorIs(err, model.ErrInvalidName)

	names, err := s.storage.List(s.ctx, Dir)
	s.Require().NoError(err)
	s.Empty(names)
}

func (s *ControllerSuite) TestAddedGameIsListedAndDeletable() {
	s.addPlayers("alice")
	game := s.addScore(idOne, "ticket.to.ride", "2025-01-01", "alice::3")

	games, err := s.controller.ListGames(s.ctx, ListFilter{})
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(game.ID, games[0].ID)

	_, err = s.controller.DeleteScore(s.ctx, string(game.ID))
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestAddScoreTrimsPlayerNames() {
	s.addPlayers("alice")

	game := s.addScore(idOne, "catan", "2025-01-01", " alice::10")
	s.Equal(map[string]int{"alice": 10}, game.Scores)
}

func (s *ControllerSuite) TestListGamesUnknownName() {
	games, err := s.controller.ListGames(s.ctx, ListFilter{GameName: "azul"})
	s.Require().NoError(err)
	s.Empty(games)

	_, ok := s.storage.Get(Dir, "azul.json")
	s.False(ok)
}

func (s *ControllerSuite) TestListGamesEmpty() {
	games, err := s.controller.ListGames(s.ctx, ListFilter{})
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *ControllerSuite) TestListGamesSkipsEmptyAndForeignFiles() {
	s.addPlayers("alice")
	s.addScore(idOne, "catan", "2025-08-07", "alice::10")
	s.storage.Put(nil, Dir, "empty.json")
	s.storage.Put([]byte("notes"), Dir, "README.txt")

	games, err := s.controller.ListGames(s.ctx, ListFilter{})
	s.Require().NoError(err)
	s.Len(games, 1)
}

func (s *ControllerSuite) TestListGamesCorruptFile() {
	s.storage.Put([]byte("[1,2"), Dir, "broken.json")

	_, err := s.controller.ListGames(s.ctx, ListFilter{})
	s.ErrorIs(err, storage.ErrDecode)
}

// File-backed tests

func TestAddScoreOnDiskCreatesNoGamesFileForUnknownPlayer(t *testing.T) {
	dir := t.TempDir()
	cfg := file.DefaultConfig()
	cfg.BaseDir = dir
	store := file.New(cfg)
	logger := testutil.NopLogger()
	players := player.New(store, logger)
	controller := NewController(store, players, mocks.NewMockClockOn(civil.Date{Year: 2025, Month: 1, Day: 1}), mocks.NewMockIDs(), logger)
	ctx := context.Background()

	_, err := players.AddPlayer(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}

	_, err = controller.AddScore(ctx, AddScoreRequest{GameName: "catan", Scores: []string{"ghost::1"}})
	if err == nil {
		t.Fatal("expected missing player error")
	}

	if _, statErr := os.Stat(filepath.Join(dir, Dir)); !os.IsNotExist(statErr) {
		t.Fatalf("games directory should not exist, stat err = %v", statErr)
	}
}
