package reactor

import "testing"

func TestEffect_RunsImmediately(t *testing.T) {
	s := NewState(1)
	runs := 0
	var seen int
	e := Effect(func() {
		runs++
		seen = s.Get()
	})
	defer e.Stop()

	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (effect should run synchronously on creation)", runs)
	}
	if seen != 1 {
		t.Fatalf("seen = %d, want 1", seen)
	}
}

func TestEffect_PendingAndFlush(t *testing.T) {
	s := NewState(1)
	runs := 0
	var seen int
	e := EffectOn(Default, func() {
		runs++
		seen = s.Get()
	})
	defer e.Stop()

	if e.Pending() {
		t.Fatal("Pending() should be false immediately after creation")
	}

	s.Set(2)
	if !e.Pending() {
		t.Fatal("Pending() should be true after a source write")
	}
	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (Flush not called yet)", runs)
	}

	e.Flush()
	if runs != 2 {
		t.Fatalf("runs = %d, want 2 after Flush", runs)
	}
	if seen != 2 {
		t.Fatalf("seen = %d, want 2", seen)
	}
	if e.Pending() {
		t.Fatal("Pending() should be false right after Flush")
	}
}

func TestEffect_FlushWithoutPendingIsNoOp(t *testing.T) {
	runs := 0
	e := Effect(func() { runs++ })
	defer e.Stop()

	e.Flush()
	e.Flush()
	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (Flush with nothing pending must not re-run fn)", runs)
	}
}

func TestEffect_StopDetachesAndDemotesLiveness(t *testing.T) {
	var hookLog []string
	s := NewStateWithOptions(1, Options[int]{
		OnWatched:   func() { hookLog = append(hookLog, "watched") },
		OnUnwatched: func() { hookLog = append(hookLog, "unwatched") },
	})
	runs := 0
	e := EffectOn(Default, func() {
		runs++
		s.Get()
	})

	if len(hookLog) != 1 || hookLog[0] != "watched" {
		t.Fatalf("hookLog = %v, want [watched]", hookLog)
	}

	e.Stop()
	if len(hookLog) != 2 || hookLog[1] != "unwatched" {
		t.Fatalf("hookLog = %v, want [watched unwatched]", hookLog)
	}

	s.Set(2)
	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (stopped effect must not re-run)", runs)
	}
}

func TestEffect_MultipleWritesBeforeFlushCoalesce(t *testing.T) {
	s := NewState(1)
	runs := 0
	e := EffectOn(Default, func() {
		runs++
		s.Get()
	})
	defer e.Stop()

	s.Set(2)
	s.Set(3)
	s.Set(4)
	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (no Flush yet)", runs)
	}

	e.Flush()
	if runs != 2 {
		t.Fatalf("runs = %d, want 2 (a single Flush coalesces multiple pending writes)", runs)
	}
}
