package queue

import "testing"

func TestPushPopRoundTrip(t *testing.T) {
	q := New(4)
	want := []string{"a", "b", "c"}
	for _, p := range want {
		q.Push(p)
	}
	for i, w := range want {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("pop %d: queue empty early", i)
		}
		if got != w {
			t.Fatalf("pop %d: got %q, want %q", i, got, w)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatalf("expected empty queue after draining")
	}
}

func TestPopEmpty(t *testing.T) {
	q := New(2)
	if _, ok := q.Pop(); ok {
		t.Fatalf("expected pop on empty queue to report no element")
	}
}

func TestGrowthPreservesOrder(t *testing.T) {
	q := New(2)
	const n = 30 // 15x the starting capacity of 2, forcing several doublings
	for i := 0; i < n; i++ {
		q.Push(string(rune('a' + i%26)))
	}
	if q.Len() != n {
		t.Fatalf("len = %d, want %d", q.Len(), n)
	}
	for i := 0; i < n; i++ {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("pop %d: unexpected empty", i)
		}
		want := string(rune('a' + i%26))
		if got != want {
			t.Fatalf("pop %d: got %q, want %q", i, got, want)
		}
	}
}

func TestSizeNeverExceedsCapacityAndTracksExactly(t *testing.T) {
	q := New(1)
	for i := 0; i < 17; i++ {
		q.Push("x")
		if q.Len() > q.Cap() {
			t.Fatalf("size %d exceeds capacity %d", q.Len(), q.Cap())
		}
	}
	for q.Len() > 0 {
		if _, ok := q.Pop(); !ok {
			t.Fatalf("pop reported empty while Len() > 0")
		}
	}
}

func TestInterleavedPushPop(t *testing.T) {
	q := New(2)
	q.Push("1")
	q.Push("2")
	if v, _ := q.Pop(); v != "1" {
		t.Fatalf("got %q, want 1", v)
	}
	q.Push("3")
	q.Push("4") // forces growth while head != 0
	q.Push("5")
	want := []string{"2", "3", "4", "5"}
	for _, w := range want {
		v, ok := q.Pop()
		if !ok || v != w {
			t.Fatalf("got %q,%v want %q", v, ok, w)
		}
	}
}

func TestNewClampsNonPositiveCapacity(t *testing.T) {
	q := New(0)
	if q.Cap() < 1 {
		t.Fatalf("capacity %d should be clamped to at least 1", q.Cap())
	}
	q.Push("a")
	if got, _ := q.Pop(); got != "a" {
		t.Fatalf("got %q, want a", got)
	}
}
