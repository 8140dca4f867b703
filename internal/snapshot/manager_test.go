package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coursework/mdu/internal/db"
)

func TestRunScanRecordsAndPrunesHistory(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "file.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	database, err := db.Open("")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	mgr := NewManager(database, t.TempDir(), 1)

	first, err := mgr.RunScan(root, 2)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if first.Blocks <= 0 {
		t.Fatalf("expected nonzero blocks, got %d", first.Blocks)
	}

	second, err := mgr.RunScan(root, 2)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if second.Root != root {
		t.Fatalf("unexpected root: %s", second.Root)
	}

	recs, err := db.ListScans(database, root, 10)
	if err != nil {
		t.Fatalf("list scans: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected retention to keep 1 scan, got %d", len(recs))
	}
}

func TestRunScanReleasesLockForSubsequentRuns(t *testing.T) {
	root := t.TempDir()
	database, err := db.Open("")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	lockDir := t.TempDir()
	mgr := NewManager(database, lockDir, 5)

	if _, err := mgr.RunScan(root, 1); err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if _, err := mgr.RunScan(root, 1); err != nil {
		t.Fatalf("second scan should succeed once lock released: %v", err)
	}
}
