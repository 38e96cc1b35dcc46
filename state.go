package reactor

// State is a writable leaf of the value graph. Reading it inside a
// Computed's callback registers the computed as a dependent; writing it
// runs the write-propagation protocol against everything transitively
// downstream.
type State[T any] struct {
	g *Graph
	n *node
}

// NewState creates a State on the package-level Default graph with the
// given initial value and no custom equality or liveness hooks.
func NewState[T any](initial T) *State[T] {
	return NewStateOn(Default, initial, Options[T]{})
}

// NewStateWithOptions creates a State on the package-level Default graph
// with custom options (a non-default Equal, or OnWatched/OnUnwatched
// hooks).
func NewStateWithOptions[T any](initial T, opts Options[T]) *State[T] {
	return NewStateOn(Default, initial, opts)
}

// NewStateOn creates a State on an explicit graph. Methods cannot carry
// their own type parameters in Go, so graph-scoped generic constructors are
// free functions taking the *Graph rather than methods on it.
func NewStateOn[T any](g *Graph, initial T, opts Options[T]) *State[T] {
	n := newNode(kindState)
	n.graph = g
	n.value = initial
	n.firstEval = false
	n.onWatched = opts.OnWatched
	n.onUnwatched = opts.OnUnwatched

	eq := opts.Equal
	if eq == nil {
		eq = defaultEqual[T]
	}
	n.eq = func(a, b any) bool { return eq(a.(T), b.(T)) }

	return &State[T]{g: g, n: n}
}

// Get returns the current value, registering a dependency if this is
// called while a Computed on the same graph is evaluating.
func (s *State[T]) Get() T {
	s.g.requireNotNotifying("State.Get")
	s.g.observe(s.n)
	return s.n.value.(T)
}

// Set replaces the value. If the new value equals the current one (per the
// State's equality predicate) this is a no-op: no write-propagation runs
// and no watcher is notified. Otherwise the write-propagation protocol
// runs synchronously and completely before Set returns; if it is not safe
// to call Set (a watcher notification is already on the stack) this
// panics with *NotificationPhaseError instead of mutating anything.
func (s *State[T]) Set(next T) {
	s.g.requireNotNotifying("State.Set")
	if s.g.equal(s.n, s.n.value, next) {
		return
	}
	s.n.value = next
	s.g.propagateWrite(s.n)
}

// Update reads the current value, transforms it with fn, and Sets the
// result. The read-transform-write sequence is not atomic across
// goroutines (see the package doc on concurrency) but is convenient for
// the common "derive the next value from the current one" pattern.
func (s *State[T]) Update(fn func(T) T) {
	s.Set(fn(s.Get()))
}

// ReadOnly returns a read-only view of this State, for encapsulation: keep
// the State private and expose only Readable[T].
func (s *State[T]) ReadOnly() Readable[T] {
	return readOnly[T]{s.n, s.g}
}

func (s *State[T]) internalNode() *node { return s.n }

// Readable is a read-only view of a State or Computed, used to expose a
// value without exposing the ability to write it.
type Readable[T any] interface {
	Get() T
}

type readOnly[T any] struct {
	n *node
	g *Graph
}

func (r readOnly[T]) Get() T {
	r.g.requireNotNotifying("Get")
	r.g.observe(r.n)
	return r.n.value.(T)
}

func (r readOnly[T]) internalNode() *node { return r.n }
