package traversal

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/coursework/mdu/internal/probe"
)

// buildTree creates a small fixture:
//
//	root/
//	  a/file1 (1 byte)
//	  a/file2 (1 byte)
//	  b/file3
func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"a", "b"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	for _, f := range []string{"a/file1", "a/file2", "b/file3"} {
		if err := os.WriteFile(filepath.Join(root, f), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func TestThreadIndependence(t *testing.T) {
	root := buildTree(t)

	res1, err := RunRoot(root, 1, nil)
	if err != nil {
		t.Fatalf("run -j1: %v", err)
	}
	res16, err := RunRoot(root, 16, nil)
	if err != nil {
		t.Fatalf("run -j16: %v", err)
	}
	if res1.Blocks != res16.Blocks {
		t.Fatalf("total differs by thread count: j1=%d j16=%d", res1.Blocks, res16.Blocks)
	}
	if res1.HadError || res16.HadError {
		t.Fatalf("unexpected error flag on a clean tree")
	}
}

func TestRootEquivalence(t *testing.T) {
	root := buildTree(t)

	whole, err := RunRoot(root, 4, nil)
	if err != nil {
		t.Fatalf("run root: %v", err)
	}

	rootStat, err := probe.Stat(root)
	if err != nil {
		t.Fatalf("stat root: %v", err)
	}
	a, err := RunRoot(filepath.Join(root, "a"), 4, nil)
	if err != nil {
		t.Fatalf("run a: %v", err)
	}
	b, err := RunRoot(filepath.Join(root, "b"), 4, nil)
	if err != nil {
		t.Fatalf("run b: %v", err)
	}

	if whole.Blocks != rootStat.Blocks+a.Blocks+b.Blocks {
		t.Fatalf("total(D) != blocks(D) + sum(total(Ci)): %d != %d + %d + %d",
			whole.Blocks, rootStat.Blocks, a.Blocks, b.Blocks)
	}
}

func TestNestedDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "d", "e"), 0o755); err != nil {
		t.Fatalf("mkdirall: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "d", "e", "f"), []byte("xxxx"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	whole, err := RunRoot(filepath.Join(root, "d"), 8, nil)
	if err != nil {
		t.Fatalf("run d: %v", err)
	}
	nested, err := RunRoot(filepath.Join(root, "d", "e"), 8, nil)
	if err != nil {
		t.Fatalf("run d/e: %v", err)
	}
	if whole.Blocks <= nested.Blocks {
		t.Fatalf("mdu d (%d) should exceed mdu d/e (%d)", whole.Blocks, nested.Blocks)
	}
}

func TestNonDirectoryRootShortCircuits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := RunRoot(path, 4, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.IsDir {
		t.Fatalf("expected non-directory result")
	}
	if res.HadError {
		t.Fatalf("unexpected error for a plain readable file")
	}
}

func TestMissingRootErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := RunRoot(filepath.Join(dir, "nope"), 4, nil)
	if err == nil {
		t.Fatalf("expected error for a missing root")
	}
}

func TestUnreadableSubdirectoryIsReportedButTraversalContinues(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root: permission bits don't block access")
	}
	root := t.TempDir()
	x := filepath.Join(root, "x")
	y := filepath.Join(root, "y")
	if err := os.Mkdir(x, 0o000); err != nil {
		t.Fatalf("mkdir x: %v", err)
	}
	defer os.Chmod(x, 0o755)
	if err := os.Mkdir(y, 0o755); err != nil {
		t.Fatalf("mkdir y: %v", err)
	}
	if err := os.WriteFile(filepath.Join(y, "f"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var mu sync.Mutex
	var diagnostics []string
	res, err := RunRoot(root, 4, func(op, path string, err error) {
		mu.Lock()
		diagnostics = append(diagnostics, FormatAccessError(op, path, err))
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.HadError {
		t.Fatalf("expected error flag set for unreadable subdirectory")
	}

	mu.Lock()
	defer mu.Unlock()
	found := false
	for _, d := range diagnostics {
		if contains(d, x) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a diagnostic mentioning %s, got %v", x, diagnostics)
	}
}

func contains(haystack, needle string) bool {
	return len(haystack) >= len(needle) && (func() bool {
		for i := 0; i+len(needle) <= len(haystack); i++ {
			if haystack[i:i+len(needle)] == needle {
				return true
			}
		}
		return false
	})()
}

func TestTerminationUnderManyWorkers(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 50; i++ {
		name := "f" + string(rune('a'+i%26)) + string(rune('0'+i/26))
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	done := make(chan RootResult, 1)
	errCh := make(chan error, 1)
	go func() {
		res, err := RunRoot(root, 16, nil)
		if err != nil {
			errCh <- err
			return
		}
		done <- res
	}()

	select {
	case res := <-done:
		if res.HadError {
			t.Fatalf("unexpected error on a clean flat directory")
		}
	case err := <-errCh:
		t.Fatalf("run: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatalf("traversal did not terminate: suspected deadlock")
	}
}

func TestSpawnFailureShutsDownCleanly(t *testing.T) {
	var started sync.WaitGroup
	failAt := 2
	factory := func(s *state, onError ErrorFunc, wg *sync.WaitGroup) error {
		if failAt == 0 {
			return errors.New("injected spawn failure")
		}
		failAt--
		started.Add(1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer started.Done()
			runWorker(s, onError)
		}()
		return nil
	}

	root := buildTree(t)
	_, err := runRoot(root, 5, nil, factory)
	if err == nil {
		t.Fatalf("expected spawn error")
	}
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("expected *SpawnError, got %T: %v", err, err)
	}
	started.Wait()
}
