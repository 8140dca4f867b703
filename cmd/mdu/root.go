package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/coursework/mdu/internal/config"
	"github.com/coursework/mdu/internal/db"
	"github.com/coursework/mdu/internal/logging"
	"github.com/coursework/mdu/internal/pathutil"
	"github.com/coursework/mdu/internal/snapshot"
	"github.com/coursework/mdu/internal/traversal"

	"github.com/spf13/cobra"
)

var (
	flagWorkers   int
	flagConfig    string
	flagDBPath    string
	flagRetention int
	flagLogLevel  string
	flagLogFormat string
)

// bindRootFlags wires the root command's flags, shared with watch.go since
// `mdu watch` runs the same traversal on a schedule instead of once.
func bindRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().IntVarP(&flagWorkers, "workers", "j", 0, "Number of worker goroutines (default from config, else 1)")
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file (default: ./.mdu.yaml)")
	cmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the scan history database (default from config)")
	cmd.PersistentFlags().IntVar(&flagRetention, "retention", 0, "Scans to retain per root (default from config)")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug|info|warn|error (default from config)")
	cmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "text|json (default from config)")
}

// loadRunConfig resolves config-file defaults against whatever flags were
// actually set, the override rule ambient config always follows here.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath := flagConfig
	if configPath == "" {
		if _, err := os.Stat("./.mdu.yaml"); err == nil {
			configPath = "./.mdu.yaml"
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if cmd.Flags().Changed("retention") {
		cfg.Retention = flagRetention
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
	return cfg, nil
}

// runRoot is the traversal driver itself: the command's direct RunE. It
// implements spec.md §6's per-root sequence over the argument list,
// printing exactly one "<blocks>\t<path>" line per root.
func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("invalid worker count %d: must be positive", cfg.Workers)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open scan database: %w", err)
	}
	defer database.Close()

	mgr := snapshot.NewManager(database, filepath.Dir(cfg.DBPath), cfg.Retention)
	mgr.SetLogger(logger)

	hadFailure := false
	for _, arg := range args {
		root, err := filepath.Abs(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, traversal.FormatAccessError("access", arg, err))
			hadFailure = true
			continue
		}
		root = pathutil.Normalize(root)

		rec, err := mgr.RunScan(root, cfg.Workers)
		if err != nil {
			logger.Error("scan failed", "root", arg, "error", err)
			fmt.Fprintln(os.Stderr, traversal.FormatAccessError("access", arg, err))
			hadFailure = true
			continue
		}

		fmt.Printf("%d\t%s\n", rec.Blocks, arg)
		if rec.HadError {
			logger.Warn("scan completed with errors", "root", arg, "blocks", rec.Blocks)
			hadFailure = true
		}
	}

	if hadFailure {
		exitCode = 1
	}
	return nil
}
