package main

import (
	"fmt"
	"text/tabwriter"

	"benchkit/internal/config"
	"benchkit/internal/history"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		store string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored benchmark runs",
		Long: `Lists the runs saved by the history output, newest last.

The store is a postgres:// DSN, a *.json file or an SQLite database
(default .benchkit.db).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if store == "" {
				store = config.Current().HistoryStore
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}

			s, err := history.Open(store)
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer s.Close()

			runs, err := s.LoadAll()
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}
			if limit > 0 && len(runs) > limit {
				runs = runs[len(runs)-limit:]
			}
			printRuns(cmd, runs)
			return nil
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "History store (default from config or .benchkit.db)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Show at most this many recent runs (0 for all)")
	return cmd
}

func printRuns(cmd *cobra.Command, runs []history.Run) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "RUN\tTIMESTAMP\tHOST\tBENCHMARK\tRUNS\tITER\tRUNS/S\tITER/S")
	for _, run := range runs {
		id := run.ID.String()[:8]
		ts := run.Timestamp.Local().Format("2006-01-02 15:04:05")
		if len(run.Results) == 0 {
			fmt.Fprintf(w, "%s\t%s\t%s\t-\t-\t-\t-\t-\n", id, ts, run.Host)
			continue
		}
		for _, r := range run.Results {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s.%s%s\t%d\t%d\t%.2f\t%.2f\n",
				id, ts, run.Host, r.Fixture, r.Name, r.Parameters, r.Runs, r.Iterations, r.RunsPerSecond, r.IterationsPerSecond)
		}
	}
	w.Flush()
}
