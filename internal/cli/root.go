package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackforge/stackforge/pkg/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "stackforge",
	Short: "Stackforge: opinionated project scaffolding for modern app stacks",
	Long: `Stackforge scaffolds production-ready projects for Next.js, Expo,
Tauri and Flutter, with optional pnpm monorepo layout, database,
ORM, storage, auth and deployment integrations wired in.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("stackforge %s\n", version.GetFullVersion()))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(createCmd)
}

// newLogger builds the CLI logger. Debug output goes to stderr so it
// never interleaves with the scaffolding report on stdout.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
