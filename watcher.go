package reactor

// Watcher is an always-live sink: the only node reachable exclusively from
// outside the graph, never as anyone else's source. Its notify callback
// runs synchronously, inside the State.Set call that first makes one of
// its watched nodes dirty or checked since the watcher was last armed.
//
// A Watcher has an explicit lifetime obligation the other two node kinds
// don't: every node passed to Watch must eventually be passed to Unwatch,
// or it (and everything it transitively depends on) remains live and
// reachable through the watcher for as long as the watcher itself is
// reachable.
type Watcher struct {
	g *Graph
	n *node

	watched map[*node]int // node -> index into order, for O(1) membership
	order   []*node
}

// NewWatcher creates a Watcher on the package-level Default graph. notify
// is called with no arguments; use GetPending from inside it to find out
// which watched nodes actually need attention.
func NewWatcher(notify func()) *Watcher {
	return NewWatcherOn(Default, notify)
}

// NewWatcherOn creates a Watcher on an explicit graph.
func NewWatcherOn(g *Graph, notify func()) *Watcher {
	n := newNode(kindWatcher)
	n.graph = g
	w := &Watcher{g: g, n: n, watched: make(map[*node]int)}
	n.notify = notify
	return w
}

// Watch adds each of nodes to the set this watcher observes (a no-op for
// any already present) and re-arms the watcher: its dirty-since-arm bit is
// cleared even when called with no arguments, so a watcher whose notify
// callback already ran once is ready to fire again on the next change.
//
// Adding a node promotes the liveness of that node and, transitively,
// every node currently in its Sources.
func (w *Watcher) Watch(nodes ...signalNode) {
	for _, sn := range nodes {
		n := requireGraphNode(w.g, sn, "Watch")
		if _, ok := w.watched[n]; ok {
			continue
		}
		w.watched[n] = len(w.order)
		w.order = append(w.order, n)
		w.n.sources = append(w.n.sources, n)
		n.addSink(w.n)
		w.g.promoteLive(n)
	}
	w.n.dirtySinceArm = false
	w.n.pendingDirect = nil
	w.g.flushHookPanics()
}

// Unwatch removes each of nodes from the set this watcher observes (a
// no-op for any not present), demoting the liveness of nodes no longer
// reachable from any watcher.
func (w *Watcher) Unwatch(nodes ...signalNode) {
	for _, sn := range nodes {
		n := requireGraphNode(w.g, sn, "Unwatch")
		idx, ok := w.watched[n]
		if !ok {
			continue
		}
		delete(w.watched, n)
		w.order = append(w.order[:idx], w.order[idx+1:]...)
		for i := idx; i < len(w.order); i++ {
			w.watched[w.order[i]] = i
		}
		n.removeSink(w.n)
		removeNodeFromSlice(&w.n.sources, n)
		removeNodeFromSlice(&w.n.pendingDirect, n)
		w.g.demoteLive(n)
	}
	w.g.flushHookPanics()
}

// GetPending returns, in watch order, the subset of watched nodes that may
// have something new to report since this watcher was last armed: a
// watched Computed currently dirty or checked (its next Get may
// recompute), and a watched State that was itself written since the arm
// (a State has no dirty/checked status of its own to inspect, so this is
// tracked separately — see node.pendingDirect).
func (w *Watcher) GetPending() []Node {
	var pending []Node
	for _, n := range w.order {
		switch {
		case n.kind == kindComputed && (n.status == statusDirty || n.status == statusChecked):
			pending = append(pending, n)
		case n.kind == kindState && containsNode(w.n.pendingDirect, n):
			pending = append(pending, n)
		}
	}
	return pending
}

func (w *Watcher) internalNode() *node { return w.n }

func removeNodeFromSlice(s *[]*node, n *node) {
	out := (*s)[:0]
	for _, existing := range *s {
		if existing != n {
			out = append(out, existing)
		}
	}
	*s = out
}

// requireGraphNode validates that sn belongs to g and returns its internal
// node, or panics with a *KindError describing the mismatch.
func requireGraphNode(g *Graph, sn signalNode, op string) *node {
	if sn == nil {
		panic(&KindError{Op: op, Message: "nil signal"})
	}
	n := sn.internalNode()
	if n == nil {
		panic(&KindError{Op: op, Message: "argument is not a graph node"})
	}
	if n.graph != g {
		panic(&KindError{Op: op, Message: "node belongs to a different Graph"})
	}
	return n
}
