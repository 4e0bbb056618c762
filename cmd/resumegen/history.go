package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stevenAthompson/resume/pkg/history"
)

// newHistoryCommand creates the "history" subcommand that lists recent
// renders from the history database.
func newHistoryCommand(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent renders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !opts.config.HistoryEnabled {
				return fmt.Errorf("render history is disabled in the config")
			}
			if _, err := os.Stat(databaseFile(opts.config.HistoryDBPath)); os.IsNotExist(err) {
				opts.logger.Info("No renders recorded yet")
				return nil
			}

			db, err := initDB(opts.config.HistoryDBPath)
			if err != nil {
				return fmt.Errorf("open history database: %w", err)
			}
			defer func() { _ = db.Close() }()

			store, err := history.NewStore(db)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list render history: %w", err)
			}
			if len(entries) == 0 {
				opts.logger.Info("No renders recorded yet")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tCONTENT\tTEMPLATE\tOUTPUT\tBYTES")
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
					entry.CreatedAt.Format("2006-01-02 15:04:05"),
					entry.ContentPath,
					entry.TemplatePath,
					entry.OutputPath,
					entry.OutputBytes,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")

	return cmd
}
