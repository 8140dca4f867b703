// Package snapshot drives one recorded scan: it runs the traversal engine
// over a root, persists the result through internal/db, and prunes old
// history, guarded by the same advisory file lock dug's snapshot manager
// used to keep two scans of the same output directory from racing. Unlike
// dug's manager, there is no per-run database file, no latest.db symlink,
// and no index-build stage — one shared database (internal/db.Open) grows
// by one scans row per run, so none of that machinery has anywhere to go.
package snapshot

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/coursework/mdu/internal/db"
	"github.com/coursework/mdu/internal/entry"
	"github.com/coursework/mdu/internal/traversal"
)

// Manager runs scans against a shared database, one root at a time.
type Manager struct {
	database  *sql.DB
	lockDir   string
	retention int
	lockFile  *os.File
	logger    *slog.Logger
}

// NewManager creates a manager that records scans into database, locking
// on lockDir (typically the directory holding the database file) and
// retaining at most retention scans per root.
func NewManager(database *sql.DB, lockDir string, retention int) *Manager {
	return &Manager{database: database, lockDir: lockDir, retention: retention}
}

// SetLogger attaches a logger that receives one WARN record per per-entry
// access error observed during a scan, in addition to the stderr line each
// such error already produces.
func (m *Manager) SetLogger(logger *slog.Logger) {
	m.logger = logger
}

// RunScan traverses root with the given worker count, persists the result
// and any sampled errors, prunes history beyond the retention window, and
// returns the recorded run.
func (m *Manager) RunScan(root string, workers int) (entry.RunRecord, error) {
	if err := m.acquireLock(); err != nil {
		return entry.RunRecord{}, fmt.Errorf("acquire scan lock: %w", err)
	}
	defer m.releaseLock()

	var collectedMu sync.Mutex
	var collected []entry.ScanError
	onError := func(op, path string, err error) {
		collectedMu.Lock()
		collected = append(collected, entry.ScanError{Op: op, Path: path, Message: err.Error()})
		collectedMu.Unlock()
		if m.logger != nil {
			m.logger.Warn("access error during scan", "op", op, "path", path, "error", err)
		}
		fmt.Fprintln(os.Stderr, traversal.FormatAccessError(op, path, err))
	}

	start := time.Now()
	res, err := traversal.RunRoot(root, workers, onError)
	end := time.Now()
	if err != nil {
		return entry.RunRecord{}, fmt.Errorf("scan %q: %w", root, err)
	}

	rec := entry.RunRecord{
		Root:      root,
		Blocks:    res.Blocks,
		HadError:  res.HadError,
		StartTime: start,
		EndTime:   end,
	}

	id, err := db.RecordScan(m.database, root, workers, rec)
	if err != nil {
		return entry.RunRecord{}, err
	}
	if err := db.RecordErrors(m.database, id, collected); err != nil {
		return entry.RunRecord{}, err
	}
	if err := db.PruneScans(m.database, root, m.retention); err != nil {
		return entry.RunRecord{}, fmt.Errorf("prune scans for %q: %w", root, err)
	}

	return rec, nil
}

func (m *Manager) acquireLock() error {
	if m.lockDir == "" {
		return nil
	}
	if err := os.MkdirAll(m.lockDir, 0o755); err != nil {
		return err
	}
	lockPath := filepath.Join(m.lockDir, ".mdu.lock")
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return err
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		return fmt.Errorf("another scan is in progress")
	}
	m.lockFile = f
	return nil
}

func (m *Manager) releaseLock() {
	if m.lockFile != nil {
		syscall.Flock(int(m.lockFile.Fd()), syscall.LOCK_UN)
		m.lockFile.Close()
		m.lockFile = nil
	}
}
