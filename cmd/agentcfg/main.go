package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/agentcfg"
	"github.com/randalmurphal/agentcfg/config"
	"github.com/randalmurphal/agentcfg/report"
)

var (
	flagConfigDir string
	flagVerbose   bool
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "agentcfg",
	Short: "Merge hierarchical AI agent configurations",
	Long: `agentcfg merges layered AI agent configuration (organization, team,
personal) into the local configuration directories of coding agents
like Claude, Cursor, and Copilot.

Hierarchy levels are ordered by priority: later levels override
earlier ones. Overlapping files are merged by format; JSON and YAML
are deep-merged, markdown is appended with an override note, and
unknown formats fall back to last-wins copy.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Tokens for private repositories commonly live in a .env file.
		_ = godotenv.Load()

		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		if flagQuiet {
			level = slog.LevelError
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.agentcfg)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "show per-source and per-file detail")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "warnings and errors only")
}

func verbosity() report.Verbosity {
	switch {
	case flagQuiet:
		return report.Quiet
	case flagVerbose:
		return report.Verbose
	default:
		return report.Normal
	}
}

func newStore() (*config.Store, error) {
	return config.NewStore(flagConfigDir)
}

func newManager() (*agentcfg.Manager, error) {
	store, err := newStore()
	if err != nil {
		return nil, err
	}
	return agentcfg.New(store,
		agentcfg.WithReporter(report.NewConsoleReporter(os.Stderr, verbosity())))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
