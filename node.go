package reactor

import "reflect"

// status is the three-colour (plus clean) propagation state of a node.
//
// clean means the cached value is known current. checked means an
// ancestor changed status but it is not yet known whether this node's
// own value would actually be different, so it must be verified by
// walking sources before trusting the cache. dirty means a direct
// source is known to have changed and recomputation is required.
type status int

const (
	statusClean status = iota
	statusChecked
	statusDirty
)

func (s status) String() string {
	switch s {
	case statusClean:
		return "clean"
	case statusChecked:
		return "checked"
	case statusDirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// kind discriminates the three node roles sharing the node struct. A
// single tagged-variant type is used instead of a polymorphism hierarchy:
// only a handful of operations branch on kind, and the arena-free graph
// benefits from uniform storage and traversal code.
type kind int

const (
	kindState kind = iota
	kindComputed
	kindWatcher
)

func (k kind) String() string {
	switch k {
	case kindState:
		return "state"
	case kindComputed:
		return "computed"
	case kindWatcher:
		return "watcher"
	default:
		return "unknown"
	}
}

// node is the untyped core of every State, Computed and Watcher. The
// generic public wrappers (State[T], Computed[T], Watcher) hold a *node
// and type-assert its value field on the way out; this keeps the
// propagation engine itself free of generic type parameters.
type node struct {
	kind   kind
	status status

	// graph identifies which Graph this node belongs to, so that passing a
	// node from one graph into another graph's Watcher is rejected as a
	// kind-error instead of silently corrupting both graphs.
	graph *Graph

	// value holds the cached payload for state/computed nodes. Watchers
	// never populate it.
	value any

	// hasErr/errVal implement the Ok(T) | Err(E) | Uninitialized cached
	// payload described in the design notes as a tagged sum rather than a
	// distinct node kind: once evaluated, a computed has a value or a cached
	// error. When hasErr is set it takes precedence over value; a panicking
	// Equal leaves the new value stored beside the captured error.
	hasErr bool
	errVal any

	firstEval bool // true until the first successful (or failed) evaluation

	eq func(a, b any) bool

	onWatched   func()
	onUnwatched func()

	// sinks lists every node whose most recent evaluation read this node,
	// in the order those edges were most recently (re)established. It is
	// the traversal structure for write propagation and is always kept in
	// sync with sources (see addSink/removeSink) regardless of liveness:
	// Go's tracing garbage collector reclaims an unreachable node (and its
	// edges) on its own, so nothing here needs to manually prune back-edges
	// the way a reference-counted host would. See DESIGN.md for the
	// liveness/back-edge trade-off this resolves.
	sinks []*node

	// sources is the ordered, duplicate-preserving list of nodes read by
	// this node's most recent evaluation. Only meaningful for computed and
	// watcher kinds; order and multiplicity matter for the consistency walk
	// and for re-observation.
	sources []*node

	// compute is the user callback for a computed node. A panic inside it
	// is recovered and stored via hasErr/errVal.
	compute func() any

	inProgress bool // cycle guard: set for the duration of a recompute
	unowned    bool // metadata: true if first evaluated outside any live context

	// writeGenSeen dedupes the write-propagation walk (see Graph.visit):
	// it records the writeGen of the last propagateWrite call that visited
	// this node, so a diamond-shaped sink graph isn't re-walked per path.
	writeGenSeen uint64

	// liveRefCount is the number of live sinks currently observing this
	// node (watchers count as permanently-live sinks of whatever they
	// watch). live is a cached liveRefCount > 0.
	liveRefCount int
	live         bool

	// watcher-only fields.
	notify        func()
	dirtySinceArm bool

	// pendingDirect lists the directly-watched State nodes whose write
	// triggered this watcher since it was last armed. A watched Computed's
	// pending-ness is already visible through its own status, but a State
	// is always clean outside the instant of its own write, so GetPending
	// needs this separate record to report it (see spec scenario S4:
	// watching a State directly and reading it back from get_pending).
	pendingDirect []*node
}

func newNode(k kind) *node {
	return &node{kind: k, status: statusClean, firstEval: true}
}

// addSink appends s to n.sinks if not already present.
func (n *node) addSink(s *node) {
	for _, existing := range n.sinks {
		if existing == s {
			return
		}
	}
	n.sinks = append(n.sinks, s)
}

// removeSink removes s from n.sinks.
func (n *node) removeSink(s *node) {
	for i, existing := range n.sinks {
		if existing == s {
			n.sinks = append(n.sinks[:i], n.sinks[i+1:]...)
			return
		}
	}
}

// hasSink reports whether s is currently registered as a sink of n.
func (n *node) hasSink(s *node) bool {
	for _, existing := range n.sinks {
		if existing == s {
			return true
		}
	}
	return false
}

// defaultEqual is the identity-with-NaN-override comparator used when a
// State or Computed is constructed without an explicit Equal option. T is
// deliberately unconstrained (not `comparable`): requiring comparable would
// rule out slice- or map-shaped signals, which the teacher's Options[T]
// supported by simply skipping equality checks. reflect.DeepEqual gives
// every T a sound default (and degrades to == for every primitive type the
// test scenarios in spec.md §8 exercise), so a custom Equal is needed only
// to relax value-equality into something looser, not to make comparison
// possible at all.
func defaultEqual[T any](a, b T) bool {
	if af, ok := any(a).(float64); ok {
		bf := any(b).(float64)
		if af != af && bf != bf {
			return true
		}
	}
	if af, ok := any(a).(float32); ok {
		bf := any(b).(float32)
		if af != af && bf != bf {
			return true
		}
	}
	return reflect.DeepEqual(a, b)
}
