package reactor

import (
	"fmt"
	"strings"
)

// KindError is raised when a receiver or argument fails a type check, e.g.
// passing a node from a different Graph to Watch, or a non-signal value
// where a signal is required. The graph is left untouched.
type KindError struct {
	Op      string
	Message string
}

func (e *KindError) Error() string {
	return fmt.Sprintf("reactor: %s: %s", e.Op, e.Message)
}

// NotificationPhaseError is raised when State.Get, State.Set or
// Computed.Get is called while any Watcher's notify callback is on the
// stack. The graph is left untouched: the call that would have mutated or
// read it never takes effect.
type NotificationPhaseError struct {
	Op string
}

func (e *NotificationPhaseError) Error() string {
	return fmt.Sprintf("reactor: %s called during a watcher notification", e.Op)
}

// CycleError is raised when a Computed's recomputation re-enters itself,
// directly or transitively, via its own Sources. The offending computed's
// status is left dirty so the next read attempts recomputation again.
type CycleError struct {
	// Description names the computed that detected the re-entrancy, when
	// available.
	Description string
}

func (e *CycleError) Error() string {
	if e.Description == "" {
		return "reactor: cycle detected during computed evaluation"
	}
	return fmt.Sprintf("reactor: cycle detected during evaluation of %s", e.Description)
}

// AggregateError collects panics raised by multiple user callbacks in one
// operation: Watcher notify callbacks triggered by a single State.Set, or
// OnWatched/OnUnwatched hooks fired by a single Watch, Unwatch or computed
// source diff. It is only ever raised when two or more callbacks panicked
// in the same operation; a single panic propagates its original value
// unwrapped.
type AggregateError struct {
	Errors []any
}

func (e *AggregateError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		parts[i] = fmt.Sprint(err)
	}
	return fmt.Sprintf("reactor: %d callbacks panicked: %s", len(e.Errors), strings.Join(parts, "; "))
}

// panicOrRecover turns a set of recovered panic values from multiple
// callbacks (watcher notifications or liveness hooks) into the single value
// that should be (re-)panicked by the operation that triggered them, per
// the aggregate-error rule in the error
// handling design: exactly one error propagates as itself, more than one
// is wrapped.
func panicOrRecover(recovered []any) {
	switch len(recovered) {
	case 0:
		return
	case 1:
		panic(recovered[0])
	default:
		panic(&AggregateError{Errors: recovered})
	}
}
