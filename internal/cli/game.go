package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/scorecli/internal/services/game"
)

func newAddScoreCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "add-score <game-name> <player::score>...",
		Short: "Record the scores of one game",
		Long: `Record one play-through of a game. Every scored player must already be
registered with add-player. Scores are non-negative integers.

Example:
  scorecli add-score catan alice::10 bob::8 --time 2025-01-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.GameController.AddScore(cmd.Context(), game.AddScoreRequest{
				GameName: args[0],
				Scores:   args[1:],
				Date:     date,
			})
			if err != nil {
				return err
			}

			out := newOutput(cmd)
			out.Print(GameChange{Action: ActionAdded, Game: *result})
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "time", "", "Date played, YYYY-MM-DD (default: today)")

	return cmd
}

func newDeleteScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-score <id>",
		Short: "Remove a recorded game by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.GameController.DeleteScore(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := newOutput(cmd)
			out.Print(GameChange{Action: ActionDeleted, Game: *result})
			return nil
		},
	}
}

func newListGamesCmd() *cobra.Command {
	var gameName string

	cmd := &cobra.Command{
		Use:   "list-games",
		Short: "List recorded games ordered by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := app.GameController.ListGames(cmd.Context(), game.ListFilter{GameName: gameName})
			if err != nil {
				return err
			}

			out := newOutput(cmd)
			out.Print(games)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameName, "game", "", "Only list games with this name")

	return cmd
}
