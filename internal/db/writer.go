package db

import (
	"database/sql"
	"fmt"

	"github.com/coursework/mdu/internal/entry"
)

const insertScanSQL = `
INSERT INTO scans (root_path, workers, blocks, had_error, start_time, end_time)
VALUES (?, ?, ?, ?, ?, ?)
`

const insertScanErrorSQL = `
INSERT INTO scan_errors (scan_id, op, path, message) VALUES (?, ?, ?, ?)
`

// maxErrorsPerScan caps how many per-path errors a single scan persists,
// the same sampling dug's ingester applies to scan_errors.
const maxErrorsPerScan = 1000

// RecordScan inserts one completed root scan and returns its row id.
func RecordScan(database *sql.DB, root string, workers int, res entry.RunRecord) (int64, error) {
	result, err := database.Exec(insertScanSQL,
		root, workers, res.Blocks, boolToInt(res.HadError), res.StartTime.Unix(), res.EndTime.Unix())
	if err != nil {
		return 0, fmt.Errorf("insert scan for %q: %w", root, err)
	}
	return result.LastInsertId()
}

// RecordErrors persists the errors observed during a scan, sampling at most
// maxErrorsPerScan of them.
func RecordErrors(database *sql.DB, scanID int64, errs []entry.ScanError) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) > maxErrorsPerScan {
		errs = errs[:maxErrorsPerScan]
	}

	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("begin error transaction: %w", err)
	}

	stmt, err := tx.Prepare(insertScanErrorSQL)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare error insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range errs {
		if _, err := stmt.Exec(scanID, e.Op, e.Path, e.Message); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert error for %q: %w", e.Path, err)
		}
	}

	return tx.Commit()
}

// PruneScans deletes all but the keep most recent scans recorded for root,
// the retention policy a scheduled mdu watch applies after each run.
func PruneScans(database *sql.DB, root string, keep int) error {
	if keep <= 0 {
		return nil
	}

	// scan_errors rows reference scans(id), so they go first.
	const pruneErrorsSQL = `
		DELETE FROM scan_errors
		WHERE scan_id IN (
			SELECT id FROM scans WHERE root_path = ?
			AND id NOT IN (
				SELECT id FROM scans WHERE root_path = ?
				ORDER BY start_time DESC LIMIT ?
			)
		)
	`
	if _, err := database.Exec(pruneErrorsSQL, root, root, keep); err != nil {
		return fmt.Errorf("prune scan errors for %q: %w", root, err)
	}

	const pruneSQL = `
		DELETE FROM scans
		WHERE root_path = ?
		AND id NOT IN (
			SELECT id FROM scans WHERE root_path = ?
			ORDER BY start_time DESC LIMIT ?
		)
	`
	if _, err := database.Exec(pruneSQL, root, root, keep); err != nil {
		return fmt.Errorf("prune scans for %q: %w", root, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
