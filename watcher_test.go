package reactor

import "testing"

// TestWatcher_NotificationAndRearm is scenario S4 from spec.md §8.
func TestWatcher_NotificationAndRearm(t *testing.T) {
	s := NewState(1)
	fires := 0
	w := NewWatcher(func() { fires++ })
	w.Watch(s)
	defer w.Unwatch(s)

	s.Set(2)
	if fires != 1 {
		t.Fatalf("fires = %d, want 1", fires)
	}
	pending := w.GetPending()
	if len(pending) != 1 || pending[0].(*node) != s.internalNode() {
		t.Fatalf("GetPending() = %v, want [s]", pending)
	}

	s.Set(3)
	if fires != 1 {
		t.Fatalf("fires = %d, want 1 (watcher not re-armed yet)", fires)
	}
	if got := w.GetPending(); len(got) != 1 {
		t.Fatalf("GetPending() after a second write without re-arm = %v, want still [s] (no new entry)", got)
	}

	w.Watch() // re-arm
	if got := w.GetPending(); len(got) != 0 {
		t.Fatalf("GetPending() right after re-arm = %v, want empty", got)
	}
	s.Set(4)
	if fires != 2 {
		t.Fatalf("fires = %d, want 2 after re-arm", fires)
	}
	if got := w.GetPending(); len(got) != 1 || got[0].(*node) != s.internalNode() {
		t.Fatalf("GetPending() after re-arm and a new write = %v, want [s]", got)
	}
}

func TestWatcher_GetPending(t *testing.T) {
	s := NewState(1)
	c := NewComputed(func() int { return s.Get() * 2 })
	w := NewWatcher(func() {})
	w.Watch(c)
	defer w.Unwatch(c)
	c.Get() // first evaluation: c is clean and has s as a source

	if got := w.GetPending(); len(got) != 0 {
		t.Fatalf("GetPending before any write = %v, want empty", got)
	}

	s.Set(5)
	pending := w.GetPending()
	if len(pending) != 1 {
		t.Fatalf("GetPending after write = %v, want 1 entry", pending)
	}
	if pending[0].Kind() != "computed" {
		t.Fatalf("pending[0].Kind() = %q, want computed", pending[0].Kind())
	}

	c.Get() // resolves it back to clean
	if got := w.GetPending(); len(got) != 0 {
		t.Fatalf("GetPending after Get = %v, want empty", got)
	}
}

func TestWatcher_Unwatch(t *testing.T) {
	s := NewState(1)
	fires := 0
	w := NewWatcher(func() { fires++ })
	w.Watch(s)

	w.Unwatch(s)
	s.Set(2)
	if fires != 0 {
		t.Fatalf("fires = %d, want 0 after Unwatch", fires)
	}
	if HasSinks(s) {
		t.Fatal("state should have no live sinks once its only watcher unwatches it")
	}
}

// TestWatcher_AggregateErrorFromMultipleWatchers exercises the
// *AggregateError path: two watchers panicking in the same write.
func TestWatcher_AggregateErrorFromMultipleWatchers(t *testing.T) {
	s := NewState(1)
	w1 := NewWatcher(func() { panic("boom1") })
	w2 := NewWatcher(func() { panic("boom2") })
	w1.Watch(s)
	w2.Watch(s)
	defer w1.Unwatch(s)
	defer w2.Unwatch(s)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		agg, ok := r.(*AggregateError)
		if !ok {
			t.Fatalf("panic = %#v (%T), want *AggregateError", r, r)
		}
		if len(agg.Errors) != 2 {
			t.Fatalf("AggregateError.Errors has %d entries, want 2", len(agg.Errors))
		}
	}()
	s.Set(2)
}

func TestWatcher_SingleWatcherPanicIsUnwrapped(t *testing.T) {
	s := NewState(1)
	w := NewWatcher(func() { panic("boom") })
	w.Watch(s)
	defer w.Unwatch(s)

	defer func() {
		r := recover()
		if r != "boom" {
			t.Fatalf("panic = %v, want unwrapped %q", r, "boom")
		}
	}()
	s.Set(2)
}

// TestWatcher_LivenessHooks is scenario S6: watching/unwatching a computed
// must fire its transitive sources' OnWatched/OnUnwatched exactly once each.
func TestWatcher_LivenessHooks(t *testing.T) {
	var log []string
	s := NewStateWithOptions(1, Options[int]{
		OnWatched:   func() { log = append(log, "s:watched") },
		OnUnwatched: func() { log = append(log, "s:unwatched") },
	})
	c := NewComputedWithOptions(func() int { return s.Get() }, Options[int]{
		OnWatched:   func() { log = append(log, "c:watched") },
		OnUnwatched: func() { log = append(log, "c:unwatched") },
	})

	c.Get() // unobserved: no hooks
	if len(log) != 0 {
		t.Fatalf("log = %v, want empty before any watcher", log)
	}

	w := NewWatcher(func() {})
	w.Watch(c)
	want := []string{"c:watched", "s:watched"}
	if !equalStrings(log, want) {
		t.Fatalf("log = %v, want %v", log, want)
	}

	w.Unwatch(c)
	want = append(want, "c:unwatched", "s:unwatched")
	if !equalStrings(log, want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWatcher_CrossGraphPanicsKindError(t *testing.T) {
	other := NewGraph()
	s := NewStateOn(other, 1, Options[int]{})
	w := NewWatcher(func() {}) // on Default

	defer func() {
		r := recover()
		if _, ok := r.(*KindError); !ok {
			t.Fatalf("panic = %#v (%T), want *KindError", r, r)
		}
	}()
	w.Watch(s)
}
