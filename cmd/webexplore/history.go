package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/webexplore/webexplore/internal/config"
	"github.com/webexplore/webexplore/internal/database"
	"github.com/webexplore/webexplore/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past explorations",
		Long: `History lists explorations archived in the local database, newest
first. Use --show with a row ID to print one archived result in full.

Examples:
  # List the last 20 explorations
  webexplore history

  # List the last 5
  webexplore history --limit 5

  # Print one archived result as JSON
  webexplore history --show 12`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of explorations to list")
	cmd.Flags().Int64("show", 0, "Print the archived result with this ID as JSON")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}
	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}

	db, err := database.Open(config.XDGDataDir(), database.Options{CreateIfNotExists: false})
	if err != nil {
		return fmt.Errorf("no exploration history yet: %w", err)
	}
	defer db.Close()

	if showID != 0 {
		result, err := db.LoadResult(cmd.Context(), showID)
		if err != nil {
			return err
		}
		_, err = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint()).Write(result)
		return err
	}

	records, err := db.RecentExplorations(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no explorations recorded")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tROOT\tDEPTH\tPAGES\tLINKS\tSTATUS\tDURATION")
	for _, rec := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			rec.ID,
			rec.StartedAt.Local().Format("2006-01-02 15:04"),
			rec.RootURL,
			rec.Depth,
			rec.PagesExplored,
			rec.LinksRecorded,
			rec.Status,
			rec.Duration.Round(time.Millisecond),
		)
	}
	return w.Flush()
}
