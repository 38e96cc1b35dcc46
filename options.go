package reactor

// EqualFunc compares two values of a signal for equality. It must be pure
// and side-effect free: the engine relies on it being deterministic, and
// may invoke it during a consistency walk far from the code that set the
// value being compared.
type EqualFunc[T any] func(a, b T) bool

// Options configures a State or Computed at construction time.
type Options[T any] struct {
	// Equal overrides the default equality predicate. State[T] and
	// Computed[T] accept any T; the default is reflect.DeepEqual with a
	// NaN-equals-NaN override for float32/float64 (see defaultEqual). Equal
	// lets a caller substitute a looser comparison, e.g. one that compares
	// only some fields of a struct.
	Equal EqualFunc[T]

	// OnWatched fires the first time this node becomes live: reachable,
	// directly or transitively, from at least one Watcher. It is also
	// fired when this node is promoted indirectly, as a source of some
	// other node that just became live.
	OnWatched func()

	// OnUnwatched fires when this node loses its last live sink and is no
	// longer reachable from any Watcher. OnWatched/OnUnwatched always fire
	// in strictly alternating pairs across a node's lifetime.
	OnUnwatched func()
}
