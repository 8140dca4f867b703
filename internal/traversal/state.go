// Package traversal implements the coordination core described in
// spec.md §§3-4.4: a shared state record guarded by one mutex and one
// condition variable, a pool of symmetric worker goroutines draining a
// shared queue.Queue, and the pending-directory counter that is the
// termination protocol's heart (spec.md §9).
package traversal

import (
	"sync"

	"github.com/coursework/mdu/internal/queue"
)

// initialQueueCapacity matches the C original's queue_init(&s.queue, 16).
const initialQueueCapacity = 16

// state holds every field the worker protocol reads or writes, all of it
// guarded by mu. cond is associated with mu, as spec.md §5 requires: it is
// signalled on every push that increases queue size, and broadcast on
// every decrement of pending that reaches zero (and on shutdown).
type state struct {
	mu   sync.Mutex
	cond *sync.Cond

	queue    *queue.Queue
	pending  int64
	total    int64
	shutdown bool
	errFlag  bool
}

func newState() *state {
	s := &state{queue: queue.New(initialQueueCapacity)}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// seed pushes the root path and sets pending to 1, establishing the
// invariant that a directory is "known" the instant its path enters the
// queue (spec.md §3).
func (s *state) seed(root string) {
	s.mu.Lock()
	s.queue.Push(root)
	s.pending = 1
	s.mu.Unlock()
}

// pushChild enqueues a newly discovered child directory and marks it
// pending, waking one waiter — there is new work, not necessarily
// completion, so Signal suffices (spec.md §5: broadcast is reserved for
// pending reaching zero and for shutdown).
func (s *state) pushChild(path string) {
	s.mu.Lock()
	s.queue.Push(path)
	s.pending++
	s.cond.Signal()
	s.mu.Unlock()
}

// finishOne decrements pending by one — a directory has been fully
// enumerated (or failed to stat/open) — and broadcasts if that was the
// last one outstanding. Every waiter on the "more coming" branch must
// observe this transition, hence broadcast rather than signal.
func (s *state) finishOne() {
	s.mu.Lock()
	s.pending--
	if s.pending == 0 {
		s.cond.Broadcast()
	}
	s.mu.Unlock()
}

// addBlocks adds n to the running total under the lock.
func (s *state) addBlocks(n int64) {
	s.mu.Lock()
	s.total += n
	s.mu.Unlock()
}

// flagError sets the one-way error flag.
func (s *state) flagError() {
	s.mu.Lock()
	s.errFlag = true
	s.mu.Unlock()
}

// requestShutdown sets the one-way shutdown flag and wakes every worker so
// they can observe it at their next wait point. Used only when spawning a
// worker fails partway through pool setup (spec.md §7, category 4).
func (s *state) requestShutdown() {
	s.mu.Lock()
	s.shutdown = true
	s.cond.Broadcast()
	s.mu.Unlock()
}

// snapshot returns the final total and error flag. Callers must only call
// this after every worker has exited.
func (s *state) snapshot() (total int64, hadError bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total, s.errFlag
}
