package traversal

import (
	"fmt"
	"os"

	"github.com/coursework/mdu/internal/pathutil"
	"github.com/coursework/mdu/internal/probe"
)

// ErrorFunc receives one diagnostic per access failure encountered while
// scanning (spec.md §7, category 3). It must not block the worker for
// long — callers typically hand this to internal/logging plus an
// fmt.Fprintln(os.Stderr, ...) in the C original's wording.
type ErrorFunc func(op, path string, err error)

// runWorker implements the seven-step protocol of spec.md §4.3. Every
// worker is symmetric: none owns any subtree, and the loop terminates
// only when shutdown is requested or the exit predicate
// (queue empty && pending == 0) holds.
func runWorker(s *state, onError ErrorFunc) {
	for {
		path, ok := acquireWork(s)
		if !ok {
			return
		}
		processOne(s, path, onError)
	}
}

// acquireWork implements steps 1-2: wait while there is nothing to do and
// the tree isn't finished, then either exit or claim one path.
func acquireWork(s *state) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.queue.Len() == 0 && !s.shutdown && s.pending > 0 {
		s.cond.Wait()
	}

	if s.shutdown {
		return "", false
	}
	if s.queue.Len() == 0 && s.pending == 0 {
		return "", false
	}

	// The lock has been held continuously since the emptiness check
	// above, so the queue cannot have changed underneath us: Pop is
	// guaranteed to succeed here.
	path, _ := s.queue.Pop()
	return path, true
}

// processOne implements steps 3-7: stat the popped directory, account for
// its own size, expand its children, and mark it finished.
func processOne(s *state, path string, onError ErrorFunc) {
	res, err := probe.Stat(path)
	if err != nil {
		onError("stat", path, err)
		s.flagError()
		s.finishOne()
		return
	}

	s.addBlocks(res.Blocks)

	if !res.IsDir {
		// Only reachable for a seed path that turns out not to be a
		// directory; the root driver never enqueues non-directories
		// otherwise (spec.md §9, "initial-seed kind ambiguity" —
		// resolved the way process_path does it).
		s.finishOne()
		return
	}

	expandDirectory(s, path, onError)
	s.finishOne()
}

// expandDirectory implements step 6: read the directory, account for each
// child, and enqueue any that are themselves directories.
func expandDirectory(s *state, dirPath string, onError ErrorFunc) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		onError("readdir", dirPath, err)
		s.flagError()
		return
	}

	for _, de := range entries {
		name := de.Name()
		if name == "." || name == ".." {
			continue
		}

		childPath := pathutil.Join(dirPath, name)
		res, err := probe.Stat(childPath)
		if err != nil {
			onError("stat", childPath, err)
			s.flagError()
			continue
		}

		if res.IsDir {
			s.pushChild(childPath)
		} else {
			s.addBlocks(res.Blocks)
		}
	}
}

// FormatAccessError renders a du-style diagnostic: "mdu: cannot read
// directory '%s': %s" for a "readdir" failure and "mdu: cannot access
// '%s': %s" for any other op. Callers (cmd/mdu and internal/snapshot) use
// this to format an op/path/err triple before writing it to stderr.
func FormatAccessError(op, path string, err error) string {
	switch op {
	case "readdir":
		return fmt.Sprintf("mdu: cannot read directory '%s': %s", path, err)
	default:
		return fmt.Sprintf("mdu: cannot access '%s': %s", path, err)
	}
}
