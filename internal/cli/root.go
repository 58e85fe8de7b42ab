package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mcoot/scorecli/internal/factory"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "scorecli",
		Short: "Keep score of board game sessions",
		Long: `scorecli records players and per-game score sheets as JSON files.

Players live in players.json and every game name gets its own file under
games/, both inside the save directory (default: the working directory).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ApplyFile(cmd.Flags().Changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a, err := factory.New(factory.Config{
				SaveDir:      cfg.SaveDir,
				AtomicWrites: cfg.Atomic,
				Logger:       newLogger(cmd.ErrOrStderr(), cfg.Verbose),
				StorageType:  cfg.Storage,
			})
			if err != nil {
				return err
			}
			app = a
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.SaveDir, "save-dir", cfg.SaveDir, "Directory holding players.json and games/ (env: SCORECLI_SAVE_DIR)")
	rootCmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Config file path (env: SCORECLI_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: SCORECLI_OUTPUT)")
	rootCmd.PersistentFlags().StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend: file, memory (env: SCORECLI_STORAGE)")
	rootCmd.PersistentFlags().BoolVar(&cfg.Atomic, "atomic", cfg.Atomic, "Write files via temp file and rename")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newAddPlayerCmd())
	rootCmd.AddCommand(newDeletePlayerCmd())
	rootCmd.AddCommand(newListPlayersCmd())
	rootCmd.AddCommand(newAddScoreCmd())
	rootCmd.AddCommand(newDeleteScoreCmd())
	rootCmd.AddCommand(newListGamesCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout())
}
