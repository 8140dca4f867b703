package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/coursework/mdu/internal/db"
	"github.com/coursework/mdu/internal/pathutil"
	"github.com/coursework/mdu/internal/scheduler"
	"github.com/coursework/mdu/internal/snapshot"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch ROOT",
	Short: "Re-run a scan of ROOT on a cron schedule, recording each run",
	Long: `watch re-scans ROOT on the configured cron schedule, recording a new
row per run the same way a one-off "mdu ROOT" invocation would. No
incremental output is produced between runs — each completed scan still
prints exactly one summary line, matching the core engine's output
contract.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var watchSchedule string

func init() {
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "Cron expression for rescans (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("invalid worker count %d: must be positive", cfg.Workers)
	}
	if watchSchedule != "" {
		cfg.Schedule = watchSchedule
	}

	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve root %q: %w", args[0], err)
	}
	root = pathutil.Normalize(root)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open scan database: %w", err)
	}
	defer database.Close()

	mgr := snapshot.NewManager(database, filepath.Dir(cfg.DBPath), cfg.Retention)

	runOnce := func() {
		rec, err := mgr.RunScan(root, cfg.Workers)
		if err != nil {
			fmt.Fprintf(os.Stderr, "watch: scan of %s failed: %v\n", root, err)
			return
		}
		fmt.Printf("%d\t%s\n", rec.Blocks, root)
	}

	sched := scheduler.New()
	if err := sched.SetJob(cfg.Schedule, runOnce); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
	}

	runOnce()
	sched.Start()
	defer sched.Stop()

	fmt.Fprintf(os.Stderr, "watch: scanning %s on schedule %q (next at %s), press Ctrl+C to stop\n",
		root, cfg.Schedule, sched.NextRunAt().Format("2006-01-02 15:04:05"))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	return nil
}
