// Package automaton provides weighted automata that describe the content
// model of an inferred complex type.
//
// Nodes are arbitrary comparable values. Every automaton owns exactly two
// pseudo-nodes, initial and final, supplied at construction. Edges carry a
// positive weight that counts how many times the transition was observed;
// adding an existing edge accumulates its weight.
package automaton

import (
	"fmt"
	"maps"
	"slices"
)

// Weighted is a directed multigraph over nodes of type N with integer
// edge weights.
type Weighted[N comparable] struct {
	initial N
	final   N

	// nodes keeps insertion order, which makes every traversal
	// deterministic.
	nodes []N
	index map[N]int

	out   map[N]map[N]int
	in    map[N]map[N]int
	edges int
}

// NewWeighted creates an automaton that contains only the initial and final
// pseudo-nodes.
func NewWeighted[N comparable](initial, final N) *Weighted[N] {
	if initial == final {
		panic(fmt.Sprintf("automaton: initial and final nodes must differ, got %v", initial))
	}
	res := &Weighted[N]{
		initial: initial,
		final:   final,
		index:   make(map[N]int),
		out:     make(map[N]map[N]int),
		in:      make(map[N]map[N]int),
	}
	res.AddNode(initial)
	res.AddNode(final)
	return res
}

// Initial returns the initial pseudo-node.
func (w *Weighted[N]) Initial() N {
	return w.initial
}

// Final returns the final pseudo-node.
func (w *Weighted[N]) Final() N {
	return w.final
}

// IsPseudo reports whether n is the initial or the final node.
func (w *Weighted[N]) IsPseudo(n N) bool {
	return n == w.initial || n == w.final
}

// AddNode inserts n if it is not present yet.
func (w *Weighted[N]) AddNode(n N) {
	if _, ok := w.index[n]; ok {
		return
	}
	w.index[n] = len(w.nodes)
	w.nodes = append(w.nodes, n)
}

// AddEdge adds the edge from→to with weight 1, or increments the weight
// of an existing edge.
func (w *Weighted[N]) AddEdge(from, to N) {
	w.AddEdgeWeight(from, to, 1)
}

// AddEdgeWeight adds weight to the edge from→to. Both nodes are added if
// absent. The weight must be positive.
func (w *Weighted[N]) AddEdgeWeight(from, to N, weight int) {
	if weight <= 0 {
		panic(fmt.Sprintf("automaton: edge %v->%v has non-positive weight %d", from, to, weight))
	}
	if to == w.initial {
		panic(fmt.Sprintf("automaton: edge %v->%v enters the initial node", from, to))
	}
	if from == w.final {
		panic(fmt.Sprintf("automaton: edge %v->%v leaves the final node", from, to))
	}
	w.AddNode(from)
	w.AddNode(to)

	if w.out[from] == nil {
		w.out[from] = make(map[N]int)
	}
	if w.in[to] == nil {
		w.in[to] = make(map[N]int)
	}
	if _, ok := w.out[from][to]; !ok {
		w.edges++
	}
	w.out[from][to] += weight
	w.in[to][from] += weight
}

// OutgoingEdges returns a copy of the successors of n with their weights.
// The map is empty if n has no outgoing edges.
func (w *Weighted[N]) OutgoingEdges(n N) map[N]int {
	res := maps.Clone(w.out[n])
	if res == nil {
		res = make(map[N]int)
	}
	return res
}

// IncomingEdges returns a copy of the predecessors of n with their weights.
func (w *Weighted[N]) IncomingEdges(n N) map[N]int {
	res := maps.Clone(w.in[n])
	if res == nil {
		res = make(map[N]int)
	}
	return res
}

// Successors returns the successors of n in node insertion order.
func (w *Weighted[N]) Successors(n N) []N {
	return w.ordered(w.out[n])
}

func (w *Weighted[N]) ordered(m map[N]int) []N {
	res := slices.Collect(maps.Keys(m))
	slices.SortFunc(res, func(a, b N) int {
		return w.index[a] - w.index[b]
	})
	return res
}

// EdgeWeight returns the weight of from→to, or 0 if there is no such edge.
func (w *Weighted[N]) EdgeWeight(from, to N) int {
	return w.out[from][to]
}

// HasSelfLoop reports whether n has an edge to itself.
func (w *Weighted[N]) HasSelfLoop(n N) bool {
	return w.out[n][n] > 0
}

// ContainsNode reports whether n belongs to the automaton.
func (w *Weighted[N]) ContainsNode(n N) bool {
	_, ok := w.index[n]
	return ok
}

// ContainsAllNodes reports whether every node in ns belongs to the
// automaton.
func (w *Weighted[N]) ContainsAllNodes(ns ...N) bool {
	for _, n := range ns {
		if !w.ContainsNode(n) {
			return false
		}
	}
	return true
}

// NodeCount returns the number of nodes, pseudo-nodes included.
func (w *Weighted[N]) NodeCount() int {
	return len(w.nodes)
}

// EdgeCount returns the number of distinct edges.
func (w *Weighted[N]) EdgeCount() int {
	return w.edges
}

// Nodes returns all nodes in insertion order.
func (w *Weighted[N]) Nodes() []N {
	return slices.Clone(w.nodes)
}

// ElementNodes returns the nodes that are not pseudo-nodes, in insertion
// order.
func (w *Weighted[N]) ElementNodes() []N {
	res := make([]N, 0, len(w.nodes))
	for _, n := range w.nodes {
		if !w.IsPseudo(n) {
			res = append(res, n)
		}
	}
	return res
}

// Occurrences returns the sum of incoming weights of n, which is the
// number of times n was observed.
func (w *Weighted[N]) Occurrences(n N) int {
	var res int
	for _, v := range w.in[n] {
		res += v
	}
	return res
}

// Equal reports whether both automata have the same node set and the same
// edge-weight function.
func (w *Weighted[N]) Equal(o *Weighted[N]) bool {
	if w == o {
		return true
	}
	if o == nil || len(w.nodes) != len(o.nodes) || w.edges != o.edges {
		return false
	}
	if w.initial != o.initial || w.final != o.final {
		return false
	}
	for _, n := range w.nodes {
		if !o.ContainsNode(n) {
			return false
		}
		if !maps.Equal(w.out[n], o.out[n]) {
			return false
		}
	}
	return true
}

func (w *Weighted[N]) clone() Weighted[N] {
	res := Weighted[N]{
		initial: w.initial,
		final:   w.final,
		nodes:   slices.Clone(w.nodes),
		index:   maps.Clone(w.index),
		out:     make(map[N]map[N]int, len(w.out)),
		in:      make(map[N]map[N]int, len(w.in)),
		edges:   w.edges,
	}
	for k, v := range w.out {
		res.out[k] = maps.Clone(v)
	}
	for k, v := range w.in {
		res.in[k] = maps.Clone(v)
	}
	return res
}
