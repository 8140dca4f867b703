package traversal

import (
	"fmt"
	"sync"

	"github.com/coursework/mdu/internal/probe"
)

// RootResult is the outcome of traversing a single command-line root
// (spec.md §4.4).
type RootResult struct {
	// Blocks is the total block count: the root's own entry plus every
	// descendant successfully stat'd.
	Blocks int64
	// HadError reports whether any per-entry access error was observed
	// (spec.md §7, categories 3-4); it never prevents Blocks from being
	// the sum of everything that *was* readable.
	HadError bool
	// IsDir reports whether the root itself was a directory. When false,
	// no traversal state was constructed — Blocks is just the root's own
	// block count (spec.md §4.4, step 2).
	IsDir bool
}

// SpawnError is returned when a worker goroutine pool could not be fully
// established (spec.md §7, category 4's setup-time subcase). Under Go's
// goroutine model this is effectively unreachable — there is no syscall
// analogous to pthread_create that can fail under a thread-count rlimit —
// but the shutdown/join/teardown path is kept so the coordination protocol
// matches spec.md §4.4 step 4 exactly and remains exercisable in tests via
// WithWorkerFactory.
type SpawnError struct {
	Index int
	Err   error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start worker %d: %v", e.Index, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// workerFactory starts one worker and reports whether it was started
// successfully. The default factory (used in production) always
// succeeds; tests may inject one that fails partway through the pool to
// exercise the shutdown-and-join path.
type workerFactory func(s *state, onError ErrorFunc, wg *sync.WaitGroup) error

func defaultWorkerFactory(s *state, onError ErrorFunc, wg *sync.WaitGroup) error {
	wg.Add(1)
	go func() {
		defer wg.Done()
		runWorker(s, onError)
	}()
	return nil
}

// RunRoot implements the per-root sequence of spec.md §4.4: link-stat the
// root, short-circuit non-directories, otherwise build a fresh state,
// seed the queue, spawn workers, join them, and report the aggregated
// total. onError is invoked for every per-entry access error observed
// anywhere in the traversal (spec.md §7, category 3); it may be nil.
func RunRoot(root string, workers int, onError ErrorFunc) (RootResult, error) {
	return runRoot(root, workers, onError, defaultWorkerFactory)
}

func runRoot(root string, workers int, onError ErrorFunc, spawn workerFactory) (RootResult, error) {
	if onError == nil {
		onError = func(string, string, error) {}
	}

	res, err := probe.Stat(root)
	if err != nil {
		return RootResult{}, err
	}

	if !res.IsDir {
		return RootResult{Blocks: res.Blocks, IsDir: false}, nil
	}

	s := newState()
	s.seed(root)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		if spawnErr := spawn(s, onError, &wg); spawnErr != nil {
			s.requestShutdown()
			wg.Wait()
			return RootResult{IsDir: true}, &SpawnError{Index: i, Err: spawnErr}
		}
	}

	wg.Wait()

	total, hadError := s.snapshot()
	return RootResult{Blocks: total, HadError: hadError, IsDir: true}, nil
}
