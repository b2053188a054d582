package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arvidhagen/replaykit/internal/config"
	"github.com/arvidhagen/replaykit/internal/logging"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// cfg is loaded once before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "replaykit",
	Short: "Replay timeline aggregation for Sentry-compatible APIs",
	Long: `replaykit reconstructs session-replay timelines from a Sentry-compatible
event API. Given an organization and a <project>:<eventID> slug it fetches
the root replay event, its rrweb timeline attachments, and the related
transaction events, then merges them into one unified timeline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		logging.Init(cmd.Name() == "fetch", logging.ParseLevel(cfg.Log.Level))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("replaykit %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// requireToken fails early with a readable message instead of a chain of
// upstream 401s.
func requireToken() error {
	if cfg.Source.Token == "" {
		slog.Error("missing API token", "hint", "set REPLAYKIT_SOURCE_TOKEN or source.token in replaykit.yaml")
		return fmt.Errorf("missing API token")
	}
	return nil
}
