package reactor

// resolveComputed is the read-time half of the propagation engine: the
// pull-based counterpart to propagateWrite's push-based marking. It brings
// n to a clean-or-dirty determination and reports whether the value n now
// holds differs (per its equality predicate) from the value it held before
// this call, so that a caller walking a dependent's Sources list knows
// whether to keep checking or to just recompute.
//
// State nodes are always already current (the entities section in the
// spec notes a state's status is clean except briefly mid-write), so only
// computed nodes do any work here.
func (g *Graph) resolveComputed(n *node) bool {
	if n.kind != kindComputed {
		return false
	}
	switch n.status {
	case statusClean:
		return false
	case statusDirty:
		return g.recompute(n)
	case statusChecked:
		changed := false
		for _, src := range n.sources {
			if g.resolveComputed(src) {
				changed = true
			}
		}
		if changed {
			return g.recompute(n)
		}
		n.status = statusClean
		return false
	default:
		return false
	}
}

// recompute re-runs n's callback, diffs the newly discovered source list
// against the previous one, and reports whether the resulting value
// changed. It is the only place a computed's callback is ever invoked.
func (g *Graph) recompute(n *node) (changed bool) {
	if n.inProgress {
		panic(&CycleError{})
	}
	n.inProgress = true

	priorSources := n.sources
	n.sources = nil

	priorConsumer := g.currentConsumer
	g.currentConsumer = n

	var newValue any
	var panicVal any
	hadPanic := false
	isCycle := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(*CycleError); ok {
					isCycle = true
				} else {
					hadPanic = true
				}
				panicVal = r
			}
		}()
		newValue = n.compute()
	}()

	g.currentConsumer = priorConsumer
	n.inProgress = false

	if isCycle {
		// A cycle leaves the graph in the pre-call state: the partial
		// source list this aborted evaluation built up (which, for a
		// direct self-reference, already contains the self-read recorded
		// by observe before this panic unwound) is discarded rather than
		// committed via diffSources, n.status is left exactly as it was
		// (dirty, so the next read re-attempts), and nothing is cached as
		// this node's error.
		n.sources = priorSources
		panic(panicVal)
	}

	if n.firstEval {
		n.unowned = !n.live
	}

	g.diffSources(n, priorSources, n.sources)

	if hadPanic {
		// The equality predicate is never invoked for errors: any
		// recomputed error unconditionally replaces the prior cached
		// payload and is always treated as a change, per the error
		// caching rule.
		n.hasErr = true
		n.errVal = panicVal
		changed = true
	} else {
		oldHasErr := n.hasErr
		oldValue := n.value
		n.hasErr = false
		n.value = newValue
		switch {
		case oldHasErr, n.firstEval:
			changed = true
		default:
			changed = !g.equal(n, oldValue, newValue)
		}
	}

	n.firstEval = false
	n.status = statusClean

	// A changed value makes every sink that is still only checked known to
	// be outdated, so a later read of that sink recomputes it instead of
	// walking its sources and finding this node already clean.
	if changed {
		for _, s := range n.sinks {
			if s.kind == kindComputed && s.status == statusChecked {
				s.status = statusDirty
			}
		}
	}
	return changed
}

// equal invokes n's equality predicate with panic recovery: a panicking
// Equal is treated pessimistically, as if it reported a change, and its
// panic becomes n's new cached error (per the error handling design's rule
// that a thrown Equal is captured as the node's cached error).
func (g *Graph) equal(n *node, a, b any) (eq bool) {
	fn := n.eq
	if fn == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			n.hasErr = true
			n.errVal = r
			eq = false
		}
	}()
	return fn(a, b)
}

// diffSources reconciles the sink back-edges after a recompute: sources
// that disappeared lose n as a sink (and, if n is live, are demoted);
// sources that newly appeared gain n as a sink (and, if n is live, are
// promoted). n.sources itself is left as captured this run — the ordered,
// duplicate-preserving list the callback actually produced.
func (g *Graph) diffSources(n *node, prior, next []*node) {
	nextSet := make(map[*node]bool, len(next))
	for _, s := range next {
		nextSet[s] = true
	}
	priorSet := make(map[*node]bool, len(prior))
	for _, s := range prior {
		priorSet[s] = true
	}

	for s := range priorSet {
		if nextSet[s] {
			continue
		}
		s.removeSink(n)
		if n.live {
			g.demoteLive(s)
		}
	}
	for s := range nextSet {
		if priorSet[s] {
			continue
		}
		s.addSink(n)
		if n.live {
			g.promoteLive(s)
		}
	}
	g.flushHookPanics()
}
