package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arvidhagen/replaykit/internal/archive"
	"github.com/arvidhagen/replaykit/internal/archive/gormstore"
	"github.com/arvidhagen/replaykit/internal/export"
	"github.com/arvidhagen/replaykit/internal/export/file"
	"github.com/arvidhagen/replaykit/internal/export/multi"
	"github.com/arvidhagen/replaykit/internal/export/stdout"
	"github.com/arvidhagen/replaykit/internal/export/webhook"
	"github.com/arvidhagen/replaykit/internal/replay"
)

var fetchFlags struct {
	org     string
	format  string
	pretty  bool
	out     string
	webhook string
	save    bool
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <project>:<eventID>",
	Short: "Fetch and merge one replay timeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchFlags.org, "org", "", "organization slug (default: fetch.organization from config)")
	fetchCmd.Flags().StringVar(&fetchFlags.format, "format", "", "stdout format: json or yaml (default: export.format)")
	fetchCmd.Flags().BoolVar(&fetchFlags.pretty, "pretty", false, "pretty-print JSON output")
	fetchCmd.Flags().StringVar(&fetchFlags.out, "out", "", "append merged timeline rows as NDJSON to this file")
	fetchCmd.Flags().StringVar(&fetchFlags.webhook, "webhook", "", "POST the snapshot to this URL")
	fetchCmd.Flags().BoolVar(&fetchFlags.save, "save", false, "save the snapshot to the configured archive")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if err := requireToken(); err != nil {
		return err
	}
	org := fetchFlags.org
	if org == "" {
		org = cfg.Fetch.Organization
	}
	if org == "" {
		return fmt.Errorf("missing organization: pass --org or set fetch.organization")
	}

	src, err := buildSource()
	if err != nil {
		return err
	}
	loader := replay.NewLoader(src, replay.WithFetchLimit(cfg.Fetch.FetchLimit))

	exporter, err := buildExporter()
	if err != nil {
		return err
	}
	defer exporter.Close()

	snap, err := loader.Load(cmd.Context(), replay.Request{
		Organization: org,
		EventSlug:    args[0],
	})
	if err != nil {
		return err
	}
	if err := exporter.Export(cmd.Context(), snap); err != nil {
		return err
	}

	if fetchFlags.save {
		if cfg.Archive.DSN == "" {
			return fmt.Errorf("--save requires archive.dsn to be configured")
		}
		db, err := gormstore.OpenPostgres(cfg.Archive.DSN)
		if err != nil {
			return err
		}
		store := gormstore.New(db)
		if err := store.Migrate(); err != nil {
			return err
		}
		rec := archive.Record{
			ID:           uuid.NewString(),
			Organization: org,
			EventSlug:    args[0],
			FetchedAt:    time.Now().UTC(),
			Snapshot:     snap,
		}
		if err := store.Save(cmd.Context(), rec); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "archived as %s\n", rec.ID)
	}
	return nil
}

// buildExporter assembles the stdout exporter plus any file/webhook
// destinations behind a fan-out.
func buildExporter() (export.Exporter, error) {
	formatName := fetchFlags.format
	if formatName == "" {
		formatName = cfg.Export.Format
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	exporters := []export.Exporter{stdout.New(format, fetchFlags.pretty || cfg.Export.Pretty)}

	outPath := fetchFlags.out
	if outPath == "" {
		outPath = cfg.Export.File
	}
	if outPath != "" {
		f, err := file.New(outPath)
		if err != nil {
			return nil, err
		}
		exporters = append(exporters, f)
	}

	hookURL := fetchFlags.webhook
	if hookURL == "" {
		hookURL = cfg.Export.Webhook
	}
	if hookURL != "" {
		exporters = append(exporters, webhook.New(hookURL))
	}

	if len(exporters) == 1 {
		return exporters[0], nil
	}
	return multi.New(exporters...), nil
}
