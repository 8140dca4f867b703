package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/coursework/mdu/internal/entry"
)

// ListScans returns the scans recorded for root, most recent first, limited
// to limit rows. A non-positive limit is treated as 1.
func ListScans(database *sql.DB, root string, limit int) ([]entry.RunRecord, error) {
	if limit <= 0 {
		limit = 1
	}

	rows, err := database.Query(`
		SELECT root_path, blocks, had_error, start_time, end_time
		FROM scans WHERE root_path = ?
		ORDER BY start_time DESC LIMIT ?
	`, root, limit)
	if err != nil {
		return nil, fmt.Errorf("query scans for %q: %w", root, err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// ListRoots returns the distinct roots mdu has ever recorded a scan for,
// most recently scanned first.
func ListRoots(database *sql.DB) ([]string, error) {
	rows, err := database.Query(`
		SELECT root_path FROM scans
		GROUP BY root_path
		ORDER BY MAX(start_time) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query roots: %w", err)
	}
	defer rows.Close()

	var roots []string
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			return nil, fmt.Errorf("scan root: %w", err)
		}
		roots = append(roots, root)
	}
	return roots, rows.Err()
}

// LatestScan returns the most recent scan recorded for root, or nil if none
// exists.
func LatestScan(database *sql.DB, root string) (*entry.RunRecord, error) {
	recs, err := ListScans(database, root, 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// LatestScanID returns the row id of the most recent scan recorded for
// root.
func LatestScanID(database *sql.DB, root string) (int64, error) {
	var id int64
	err := database.QueryRow(`
		SELECT id FROM scans WHERE root_path = ? ORDER BY start_time DESC LIMIT 1
	`, root).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("latest scan id for %q: %w", root, err)
	}
	return id, nil
}

// LoadErrors returns the errors sampled for a given scan id, ordered by
// insertion.
func LoadErrors(database *sql.DB, scanID int64) ([]entry.ScanError, error) {
	rows, err := database.Query(`
		SELECT op, path, message FROM scan_errors WHERE scan_id = ? ORDER BY id ASC
	`, scanID)
	if err != nil {
		return nil, fmt.Errorf("query scan errors for %d: %w", scanID, err)
	}
	defer rows.Close()

	var errs []entry.ScanError
	for rows.Next() {
		var e entry.ScanError
		if err := rows.Scan(&e.Op, &e.Path, &e.Message); err != nil {
			return nil, fmt.Errorf("scan error row: %w", err)
		}
		errs = append(errs, e)
	}
	return errs, rows.Err()
}

func scanRows(rows *sql.Rows) ([]entry.RunRecord, error) {
	var recs []entry.RunRecord
	for rows.Next() {
		var rec entry.RunRecord
		var hadError int
		var start, end int64
		if err := rows.Scan(&rec.Root, &rec.Blocks, &hadError, &start, &end); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.HadError = hadError != 0
		rec.StartTime = time.Unix(start, 0)
		rec.EndTime = time.Unix(end, 0)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
