package reactor

// Computed is a lazily-evaluated, memoized derived value. Its callback is
// invoked by Get — never eagerly, and never more than once per
// evaluation — and may itself read any number of State or Computed values;
// exactly which ones it read during its most recent evaluation becomes its
// ordered Sources list (see IntrospectSources), recomputed fresh every
// time the callback runs.
type Computed[T any] struct {
	g *Graph
	n *node
}

// NewComputed creates a Computed on the package-level Default graph.
func NewComputed[T any](compute func() T) *Computed[T] {
	return NewComputedOn(Default, compute, Options[T]{})
}

// NewComputedWithOptions creates a Computed on the package-level Default
// graph with custom options.
func NewComputedWithOptions[T any](compute func() T, opts Options[T]) *Computed[T] {
	return NewComputedOn(Default, compute, opts)
}

// NewComputedOn creates a Computed on an explicit graph.
func NewComputedOn[T any](g *Graph, compute func() T, opts Options[T]) *Computed[T] {
	n := newNode(kindComputed)
	n.graph = g
	n.status = statusDirty // needs first computation
	n.onWatched = opts.OnWatched
	n.onUnwatched = opts.OnUnwatched
	n.compute = func() any { return compute() }

	eq := opts.Equal
	if eq == nil {
		eq = defaultEqual[T]
	}
	n.eq = func(a, b any) bool { return eq(a.(T), b.(T)) }

	return &Computed[T]{g: g, n: n}
}

// Get returns the current value, recomputing the callback first if needed:
// immediately if this computed is dirty, or after a consistency walk of
// its sources if it is merely checked. If the callback's most recent
// evaluation panicked, that same value is re-panicked here instead of a
// value being returned, and continues to be re-panicked on every Get until
// a source changes and a recomputation produces a different outcome.
func (c *Computed[T]) Get() T {
	c.g.requireNotNotifying("Computed.Get")
	c.g.observe(c.n)
	c.g.resolveComputed(c.n)
	if c.n.hasErr {
		panic(c.n.errVal)
	}
	return c.n.value.(T)
}

// ReadOnly returns this computed as a Readable[T]; Computed already only
// exposes Get, so this is a convenience for code that wants a uniform
// Readable[T] over both State and Computed.
func (c *Computed[T]) ReadOnly() Readable[T] { return computedReadable[T]{c} }

type computedReadable[T any] struct{ c *Computed[T] }

func (r computedReadable[T]) Get() T { return r.c.Get() }

func (c *Computed[T]) internalNode() *node { return c.n }
