package cli

import (
	"github.com/spf13/cobra"
)

func newAddPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-player <name>",
		Short: "Register a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := app.PlayerService.AddPlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := newOutput(cmd)
			out.Print(PlayerChange{Action: ActionAdded, Player: player})
			return nil
		},
	}
}

func newDeletePlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-player <name>",
		Short: "Remove a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := app.PlayerService.DeletePlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := newOutput(cmd)
			out.Print(PlayerChange{Action: ActionDeleted, Player: player})
			return nil
		},
	}
}

func newListPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-players",
		Short: "List registered players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := app.PlayerService.ListPlayers(cmd.Context())
			if err != nil {
				return err
			}

			out := newOutput(cmd)
			out.Print(players)
			return nil
		},
	}
}
