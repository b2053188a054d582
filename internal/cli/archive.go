package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arvidhagen/replaykit/internal/archive/gormstore"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect archived replay snapshots",
}

var archiveListFlags struct {
	limit int
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		recs, err := store.List(cmd.Context(), archiveListFlags.limit)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			fmt.Printf("%s  %s  %s/%s\n",
				rec.ID, rec.FetchedAt.Format("2006-01-02 15:04:05"),
				rec.Organization, rec.EventSlug)
		}
		return nil
	},
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one archived snapshot as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		rec, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	archiveListCmd.Flags().IntVar(&archiveListFlags.limit, "limit", 20, "max records to list (0 = all)")
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	rootCmd.AddCommand(archiveCmd)
}

func openArchive() (*gormstore.Store, error) {
	if cfg.Archive.DSN == "" {
		return nil, fmt.Errorf("archive.dsn is not configured")
	}
	db, err := gormstore.OpenPostgres(cfg.Archive.DSN)
	if err != nil {
		return nil, err
	}
	store := gormstore.New(db)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}
