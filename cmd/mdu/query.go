package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/coursework/mdu/internal/db"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query ROOT",
	Short: "List recorded scan history for a root, for scripting",
	Long:  `Print the scan history recorded for ROOT as a table, most recent first.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

var queryLimit int

func init() {
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 20, "Maximum number of scans to list")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open scan database: %w", err)
	}
	defer database.Close()

	root := args[0]
	recs, err := db.ListScans(database, root, queryLimit)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "START\tDURATION\tDISK\tERRORS\n")
	for _, rec := range recs {
		duration := rec.EndTime.Sub(rec.StartTime)
		errors := "no"
		if rec.HadError {
			errors = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rec.StartTime.Format("2006-01-02 15:04:05"),
			duration.Round(1_000_000),
			humanize.Bytes(uint64(rec.Blocks)*512),
			errors,
		)
	}
	w.Flush()

	return nil
}
