package reactor

// Node is an opaque handle to any graph entity — a State, a Computed or a
// Watcher — used only by the introspection API below and as the element
// type of the sequences it returns. Its identity (not its contents) is
// what callers compare; use the typed State[T]/Computed[T]/Watcher values
// themselves for everything else.
type Node interface {
	Kind() string
	node() *node
}

func (n *node) Kind() string { return n.kind.String() }
func (n *node) node() *node  { return n }

// signalNode is implemented by every exported wrapper (State[T],
// Computed[T], Watcher) so the introspection functions below can accept
// any of them without themselves being generic.
type signalNode interface {
	internalNode() *node
}

// IntrospectSources returns the ordered sequence of nodes read during the
// most recent evaluation of a Computed, or watched by a Watcher. For a
// Computed this is exactly the Sources list the consistency walk and
// recompute algorithm operate over, duplicates and all.
func IntrospectSources(n signalNode) []Node {
	src := n.internalNode().sources
	out := make([]Node, len(src))
	for i, s := range src {
		out[i] = s
	}
	return out
}

// IntrospectSinks returns the live sinks of a State or Computed: the
// subset of its observers currently reachable from at least one Watcher.
// Sinks that exist only for propagation bookkeeping (an unwatched computed
// that happens to read this node) are not included.
func IntrospectSinks(n signalNode) []Node {
	sinks := n.internalNode().sinks
	out := make([]Node, 0, len(sinks))
	for _, s := range sinks {
		if s.live || s.kind == kindWatcher {
			out = append(out, s)
		}
	}
	return out
}

// HasSinks reports whether a State or Computed has at least one live sink.
func HasSinks(n signalNode) bool {
	return len(IntrospectSinks(n)) > 0
}

// HasSources reports whether a Computed or Watcher has at least one
// source/watched node.
func HasSources(n signalNode) bool {
	return len(n.internalNode().sources) > 0
}
