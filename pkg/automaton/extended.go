package automaton

// Extended is the content model of a complex type. On top of Weighted it
// offers a deterministic topological order, structural equality and the
// weighted union used when two complex types are merged.
type Extended[N comparable] struct {
	Weighted[N]
}

// NewExtended creates an empty content model.
func NewExtended[N comparable](initial, final N) *Extended[N] {
	return &Extended[N]{Weighted: *NewWeighted(initial, final)}
}

// Clone returns a deep copy of the automaton.
func (e *Extended[N]) Clone() *Extended[N] {
	return &Extended[N]{Weighted: e.Weighted.clone()}
}

// Equal reports whether two content models have the same nodes and the
// same edge weights.
func (e *Extended[N]) Equal(o *Extended[N]) bool {
	if o == nil {
		return e == nil
	}
	return e.Weighted.Equal(&o.Weighted)
}

// IsEmpty reports whether the content model has no element nodes.
func (e *Extended[N]) IsEmpty() bool {
	return len(e.nodes) == 2
}

// TopologicalOrder returns the nodes ordered so that every node comes
// after its predecessors. The order starts with the initial node and ends
// with the final node. Self-loops do not count as dependencies. Ties are
// broken by insertion order. Cycles that remain after extraction are broken
// at the earliest inserted node of the cycle.
func (e *Extended[N]) TopologicalOrder() []N {
	indegree := make(map[N]int, len(e.nodes))
	for _, n := range e.nodes {
		for from := range e.in[n] {
			if from != n {
				indegree[n]++
			}
		}
	}

	res := make([]N, 0, len(e.nodes))
	done := make(map[N]bool, len(e.nodes))
	visit := func(n N) {
		done[n] = true
		res = append(res, n)
		for to := range e.out[n] {
			if to != n {
				indegree[to]--
			}
		}
	}

	visit(e.initial)
	remaining := len(e.nodes) - 2
	for remaining > 0 {
		next, found := e.nextReady(done, indegree)
		if !found {
			// cycle: take the earliest inserted node that is left
			next, found = e.nextReady(done, nil)
		}
		if !found {
			break
		}
		visit(next)
		remaining--
	}
	done[e.final] = true
	res = append(res, e.final)
	return res
}

// nextReady returns the earliest inserted unvisited element node whose
// indegree is zero. With a nil indegree map any unvisited element node
// qualifies.
func (e *Extended[N]) nextReady(done map[N]bool, indegree map[N]int) (N, bool) {
	for _, n := range e.nodes {
		if done[n] || e.IsPseudo(n) {
			continue
		}
		if indegree == nil || indegree[n] <= 0 {
			return n, true
		}
	}
	var zero N
	return zero, false
}

// Relabel returns a new automaton in which every node n is replaced by
// fn(n). Nodes that map to the same label are fused and their edge weights
// are summed. Pseudo-nodes are never relabeled.
func (e *Extended[N]) Relabel(fn func(N) N) *Extended[N] {
	res := NewExtended(e.initial, e.final)
	label := func(n N) N {
		if e.IsPseudo(n) {
			return n
		}
		return fn(n)
	}
	for _, n := range e.nodes {
		res.AddNode(label(n))
	}
	for _, from := range e.nodes {
		for _, to := range e.Successors(from) {
			res.AddEdgeWeight(label(from), label(to), e.out[from][to])
		}
	}
	return res
}

// Merge returns the weighted union of e and o. Nodes of o are first mapped
// through fn (nil means identity); the pseudo-nodes of o are identified with
// those of e. The weight of every edge in the result is the sum of its
// weights in both automata.
func (e *Extended[N]) Merge(o *Extended[N], fn func(N) N) *Extended[N] {
	res := e.Clone()
	label := func(n N) N {
		switch n {
		case o.initial:
			return e.initial
		case o.final:
			return e.final
		}
		if fn == nil {
			return n
		}
		return fn(n)
	}
	for _, n := range o.nodes {
		res.AddNode(label(n))
	}
	for _, from := range o.nodes {
		for _, to := range o.Successors(from) {
			res.AddEdgeWeight(label(from), label(to), o.out[from][to])
		}
	}
	return res
}

// Edges returns every edge as a (from, to, weight) triple, ordered by the
// insertion order of from and then of to.
func (e *Extended[N]) Edges() []Edge[N] {
	var res []Edge[N]
	for _, from := range e.nodes {
		for _, to := range e.Successors(from) {
			res = append(res, Edge[N]{From: from, To: to, Weight: e.out[from][to]})
		}
	}
	return res
}

// Edge is a weighted transition between two nodes.
type Edge[N comparable] struct {
	From   N
	To     N
	Weight int
}
