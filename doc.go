// Package reactor implements a reactive value graph: cells of state
// ("signals"), lazily recomputed derived formulas over them ("computeds"),
// and external observers that are notified synchronously whenever a
// derived value may have gone stale ("watchers").
//
// Unlike a plain publish/subscribe signal library, reactor does not require
// dependencies to be declared up front. A Computed's callback simply calls
// Get on whatever State or Computed values it needs; the graph discovers
// the dependency automatically on every evaluation and uses that discovery
// to decide, on the next write, exactly which derived values might need to
// change.
//
// # Core Types
//
// State[T] - a writable reactive cell.
//
// Computed[T] - a derived, memoized, lazily-evaluated value.
//
// Watcher - an always-live sink that synchronously notifies an external
// callback when something it watches may have changed.
//
// # Example Usage
//
//	counter := reactor.NewState(0)
//	isEven := reactor.NewComputed(func() bool {
//	    return counter.Get()%2 == 0
//	})
//
//	w := reactor.NewWatcher(func() {
//	    // No State or Computed may be read in here.
//	    fmt.Println("isEven may be stale")
//	})
//	w.Watch(isEven)
//	defer w.Unwatch(isEven)
//
//	isEven.Get()              // true; records counter as a source
//	counter.Set(1)            // prints "isEven may be stale"
//	fmt.Println(isEven.Get()) // prints "false"
//
// # Propagation model
//
// Every write runs a synchronous, depth-first, three-colour marking pass
// over the sink graph (clean / checked / dirty), notifying any newly
// dirtied watcher before the write returns. Reads are pull-based: a
// Computed only actually re-runs its callback when read, and only if a
// "checked" walk of its sources finds that one of them produced a value
// that is not Equal to what it produced last time. This makes the engine
// glitch-free (a read never observes a half-propagated graph) and gives it
// O(changed-frontier) work per write rather than O(whole-graph).
//
// # Concurrency
//
// A Graph is not safe for concurrent use by multiple goroutines. This is
// deliberate, not an oversight: the propagation algorithm relies on a
// single mutable "currently evaluating" pointer per graph. A host wanting
// to shard work across threads should maintain one independent Graph per
// thread rather than share one under a lock; see Graph and NewGraph.
//
// # Error handling
//
// A Computed's callback may panic; the panic is caught, cached, and
// re-raised (via panic, not a returned error) on every subsequent Get
// until a dependency changes and the callback produces a different
// outcome. A Watcher's notify callback may also panic; panics from every
// watcher notified by a single write are collected and re-raised (singly,
// or wrapped in an *AggregateError) from the Set call that triggered them,
// after every watcher has had a chance to run.
//
// # Design Principles
//
//  1. Automatic dependency discovery - no explicit deps list, unlike a
//     plain pub/sub signal.
//  2. Pull-based, glitch-free evaluation - reads never see partial writes.
//  3. Equality-based pruning - an unchanged recomputed value stops
//     propagation one layer at a time.
//  4. Liveness-aware hooks - OnWatched/OnUnwatched fire exactly when a
//     node becomes reachable from, or unreachable from, a Watcher.
//  5. Single-threaded per Graph - no locks, no atomics, by design.
package reactor
