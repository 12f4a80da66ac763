package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskbloom/taskbloom/internal/factory"
	"github.com/taskbloom/taskbloom/internal/model"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "bloom",
		Short: "CLI client for the TaskBloom API",
		Long: `bloom is a CLI client for TaskBloom, the task tracker where completing
tasks grows a virtual garden.

It manages your session, tasks, garden, and productivity analytics against
a remote TaskBloom server. Completing a task plants a random flower and
earns coins.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app = factory.New(factory.Config{
				BaseURL: cfg.ServerURL,
				Tokens:  cfg.TokenStore(),
				Logger:  newLogger(cfg.Verbose),
			})

			// Resolve any persisted session before the command runs, the
			// same way the web client resolves it on page load
			app.Session.Start(cmd.Context())
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: BLOOM_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: BLOOM_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: BLOOM_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newTaskCmd())
	rootCmd.AddCommand(newGardenCmd())
	rootCmd.AddCommand(newAnalyticsCmd())
	rootCmd.AddCommand(newProfileCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the CLI logger. Logs go to stderr so they never mix with
// command output.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// requireAuth guards commands that need an authenticated session
func requireAuth() error {
	if !app.Session.IsAuthenticated() {
		return fmt.Errorf("%w: run 'bloom auth login' first", model.ErrNotAuthenticated)
	}
	return nil
}
