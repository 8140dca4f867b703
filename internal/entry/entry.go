// Package entry holds the small set of value types shared between the
// traversal engine's diagnostics and the persistence layer. It does not
// model individual scanned entries the way the teacher's package of the
// same name did — spec.md's data model has no per-file record, only a
// running block total — so this package is limited to what both layers
// actually need: an error shape and a completed-run summary.
package entry

import "time"

// ScanError describes one per-entry access failure encountered during a
// traversal: the failing operation ("stat" or "readdir"), the path it
// failed on, and the underlying error text.
type ScanError struct {
	Op      string
	Path    string
	Message string
}

// RunRecord summarizes one completed root traversal: the total block count,
// whether any error was observed along the way, and when it ran. This is
// the shape persisted by internal/db and displayed by internal/tui — it is
// deliberately distinct from traversal.RootResult, which is the engine's
// own call-scoped return value and carries no timestamps.
type RunRecord struct {
	Root      string
	Blocks    int64
	HadError  bool
	StartTime time.Time
	EndTime   time.Time
}
