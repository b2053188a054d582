package cli

import (
	"log/slog"

	hertzserver "github.com/cloudwego/hertz/pkg/app/server"
	"github.com/spf13/cobra"

	"github.com/arvidhagen/replaykit/internal/archive"
	"github.com/arvidhagen/replaykit/internal/archive/gormstore"
	"github.com/arvidhagen/replaykit/internal/archive/memory"
	"github.com/arvidhagen/replaykit/internal/metrics/inmemory"
	"github.com/arvidhagen/replaykit/internal/replay"
	"github.com/arvidhagen/replaykit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve aggregated replay timelines over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := requireToken(); err != nil {
		return err
	}
	src, err := buildSource()
	if err != nil {
		return err
	}

	recorder := inmemory.NewRecorder()
	loader := replay.NewLoader(src,
		replay.WithFetchLimit(cfg.Fetch.FetchLimit),
		replay.WithMetrics(recorder),
	)

	var store archive.Store
	if cfg.Archive.DSN != "" {
		db, err := gormstore.OpenPostgres(cfg.Archive.DSN)
		if err != nil {
			return err
		}
		gs := gormstore.New(db)
		if err := gs.Migrate(); err != nil {
			return err
		}
		store = gs
	} else {
		// Archived snapshots survive only as long as the process.
		store = memory.New()
	}

	h := server.Handler{
		Loader:  loader,
		Archive: store,
		Stats:   recorder,
	}

	s := hertzserver.Default(hertzserver.WithHostPorts(cfg.Server.Addr))
	h.RegisterRoutes(s)

	slog.Info("replaykit server listening",
		"addr", cfg.Server.Addr, "provider", cfg.Source.Provider)
	s.Spin()
	return nil
}
