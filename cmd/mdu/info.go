package main

import (
	"fmt"
	"time"

	"github.com/coursework/mdu/internal/db"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info ROOT",
	Short: "Show the most recent recorded scan for a root",
	Long:  `Print timestamps, duration, disk usage, and error status for the latest scan of ROOT.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
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
	rec, err := db.LatestScan(database, root)
	if err != nil {
		return fmt.Errorf("load scan for %q: %w", root, err)
	}
	if rec == nil {
		return fmt.Errorf("no recorded scans for %q", root)
	}

	duration := rec.EndTime.Sub(rec.StartTime)

	fmt.Printf("Scan Information\n")
	fmt.Printf("================\n\n")
	fmt.Printf("Root:       %s\n", rec.Root)
	fmt.Printf("Start Time: %s\n", rec.StartTime.Format(time.RFC3339))
	fmt.Printf("End Time:   %s\n", rec.EndTime.Format(time.RFC3339))
	fmt.Printf("Duration:   %s\n", duration.Round(time.Millisecond))
	fmt.Printf("Disk Usage: %s\n", humanize.Bytes(uint64(rec.Blocks)*512))
	if rec.HadError {
		fmt.Printf("Errors:     yes\n")

		id, err := db.LatestScanID(database, root)
		if err == nil {
			errs, loadErr := db.LoadErrors(database, id)
			if loadErr == nil && len(errs) > 0 {
				fmt.Printf("\nSampled errors (%s):\n", humanize.Comma(int64(len(errs))))
				for _, e := range errs {
					fmt.Printf("  %s: %s (%s)\n", e.Op, e.Path, e.Message)
				}
			}
		}
	}

	return nil
}
