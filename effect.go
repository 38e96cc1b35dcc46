package reactor

// EffectRef represents a running side effect that can be stopped.
//
// Effect scheduling (batching writes, running on a microtask/frame queue)
// is explicitly out of scope for the core graph, and so — by the core's
// own rule that no node may be read or written while a watcher's notify
// callback is on the stack — is synchronously re-running an effect's body
// from inside that callback. EffectRef is the minimal auxiliary the design
// notes describe as living "atop watchers": dependency discovery is
// automatic (the effect body runs inside an internal Computed, so whatever
// it reads becomes its Sources, exactly like any other Computed), but
// re-running it is a two-step, drain-after-notify protocol instead of a
// single synchronous callback:
//
//  1. notify fires during the write that made the effect's Computed dirty
//     or checked, and only records that fact (GetPending below).
//  2. The host calls Flush once it is safe to read the graph again (i.e.
//     once the triggering Set call has returned) to actually re-run fn.
//
// A host that wants "run synchronously on every write" scheduling can get
// it by calling Flush immediately after every Set; that policy choice is
// exactly the kind of "external collaborator" the core spec excludes.
type EffectRef struct {
	g *Graph
	w *Watcher
	c *Computed[struct{}]
}

// Effect creates an effect on the package-level Default graph: fn runs
// immediately. Call Flush after a write that might affect it (or poll
// Pending) to re-run it; call Stop to detach it permanently.
func Effect(fn func()) *EffectRef {
	return EffectOn(Default, fn)
}

// EffectOn creates an effect on an explicit graph.
func EffectOn(g *Graph, fn func()) *EffectRef {
	c := NewComputedOn(g, func() struct{} {
		fn()
		return struct{}{}
	}, Options[struct{}]{})

	e := &EffectRef{g: g, c: c}
	e.w = NewWatcherOn(g, func() {
		// Deliberately empty: reading c here to re-run fn would violate
		// the no-reads-during-notification invariant. Flush does the
		// actual work once the triggering write has returned.
	})
	e.w.Watch(c)
	c.Get() // run fn immediately, per the Effect contract
	return e
}

// Pending reports whether this effect has a watched change it hasn't
// re-run for yet.
func (e *EffectRef) Pending() bool {
	return len(e.w.GetPending()) > 0
}

// Flush re-runs fn if, and only if, a source has changed since the last
// run. Safe to call at any time outside a watcher notification; a no-op
// otherwise.
func (e *EffectRef) Flush() {
	if e.Pending() {
		e.c.Get()
		e.w.Watch() // re-arm: see the Watcher.Watch doc on dirty-since-arm
	}
}

// Stop detaches the effect: it will no longer be marked pending, and
// everything it was reading is released from liveness (triggering
// OnUnwatched as appropriate) unless something else still retains it. Safe
// to call more than once.
func (e *EffectRef) Stop() {
	e.w.Unwatch(e.c)
}
