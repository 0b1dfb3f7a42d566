package automaton_test

import (
	"testing"

	"github.com/gnames/xsdinfer/pkg/automaton"
	"github.com/stretchr/testify/assert"
)

func newAut() *automaton.Extended[string] {
	return automaton.NewExtended("initial", "final")
}

func TestAddEdgeAccumulates(t *testing.T) {
	tests := []struct {
		msg      string
		from, to string
	}{
		{"regular edge", "X", "Y"},
		{"self loop", "C", "C"},
	}

	for _, v := range tests {
		a := newAut()
		for range 5 {
			a.AddEdge(v.from, v.to)
		}
		assert.Equal(t, 5, a.EdgeWeight(v.from, v.to), v.msg)
		assert.Equal(t, 1, a.EdgeCount(), v.msg)
	}
}

func TestEdges(t *testing.T) {
	a := newAut()
	a.AddEdge("initial", "a")
	a.AddEdgeWeight("a", "b", 3)
	a.AddEdge("b", "final")

	assert.True(t, a.ContainsNode("a"))
	assert.True(t, a.ContainsAllNodes("a", "b", "initial", "final"))
	assert.False(t, a.ContainsAllNodes("a", "z"))
	assert.Equal(t, 4, a.NodeCount())
	assert.Equal(t, 3, a.EdgeCount())
	assert.Equal(t, 0, a.EdgeWeight("b", "a"))
	assert.Equal(t, map[string]int{"b": 3}, a.OutgoingEdges("a"))
	assert.Equal(t, map[string]int{"a": 3}, a.IncomingEdges("b"))
	assert.NotNil(t, a.OutgoingEdges("final"))
	assert.Empty(t, a.OutgoingEdges("final"))
	assert.Equal(t, []string{"a", "b"}, a.ElementNodes())
	assert.Equal(t, 3, a.Occurrences("b"))

	// returned maps are copies
	out := a.OutgoingEdges("a")
	out["b"] = 100
	assert.Equal(t, 3, a.EdgeWeight("a", "b"))
}

func TestPreconditions(t *testing.T) {
	assert.Panics(t, func() { automaton.NewExtended("x", "x") })
	a := newAut()
	assert.Panics(t, func() { a.AddEdgeWeight("a", "b", 0) })
	assert.Panics(t, func() { a.AddEdge("a", "initial") })
	assert.Panics(t, func() { a.AddEdge("final", "a") })
}

func TestTopologicalOrder(t *testing.T) {
	tests := []struct {
		msg   string
		edges [][2]string
		res   []string
	}{
		{
			msg:   "empty",
			edges: [][2]string{{"initial", "final"}},
			res:   []string{"initial", "final"},
		},
		{
			msg: "chain with repetition",
			edges: [][2]string{
				{"initial", "a"}, {"a", "b"}, {"b", "b"}, {"b", "c"}, {"c", "final"},
			},
			res: []string{"initial", "a", "b", "c", "final"},
		},
		{
			msg: "diamond",
			edges: [][2]string{
				{"initial", "a"}, {"a", "c"}, {"c", "d"}, {"a", "b"},
				{"b", "d"}, {"d", "final"},
			},
			res: []string{"initial", "a", "c", "b", "d", "final"},
		},
		{
			msg: "cycle is broken deterministically",
			edges: [][2]string{
				{"initial", "a"}, {"a", "b"}, {"b", "a"}, {"b", "final"},
			},
			res: []string{"initial", "a", "b", "final"},
		},
	}

	for _, v := range tests {
		a := newAut()
		for _, e := range v.edges {
			a.AddEdge(e[0], e[1])
		}
		assert.Equal(t, v.res, a.TopologicalOrder(), v.msg)
	}
}

func TestEqual(t *testing.T) {
	build := func(order []string) *automaton.Extended[string] {
		a := newAut()
		prev := "initial"
		for _, n := range order {
			a.AddEdge(prev, n)
			prev = n
		}
		a.AddEdge(prev, "final")
		return a
	}

	a := build([]string{"x", "y"})
	b := build([]string{"x", "y"})
	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(a.Clone()))

	b.AddEdge("x", "y")
	assert.False(t, a.Equal(b), "weights differ")
	assert.False(t, a.Equal(build([]string{"y", "x"})))
	assert.False(t, a.Equal(build([]string{"x"})))
}

func TestMerge(t *testing.T) {
	a := newAut()
	a.AddEdge("initial", "x")
	a.AddEdge("x", "final")

	b := automaton.NewExtended("start", "end")
	b.AddEdge("start", "x")
	b.AddEdge("x", "y")
	b.AddEdge("y", "end")

	m := a.Merge(b, nil)
	assert.Equal(t, 2, m.EdgeWeight("initial", "x"))
	assert.Equal(t, 1, m.EdgeWeight("x", "final"))
	assert.Equal(t, 1, m.EdgeWeight("x", "y"))
	assert.Equal(t, 1, m.EdgeWeight("y", "final"))
	assert.False(t, m.ContainsNode("start"))

	// inputs are untouched
	assert.Equal(t, 1, a.EdgeWeight("initial", "x"))
	assert.False(t, a.ContainsNode("y"))

	// commutative up to node order
	c := automaton.NewExtended("initial", "final")
	for _, e := range b.Edges() {
		from, to := e.From, e.To
		if from == "start" {
			from = "initial"
		}
		if to == "end" {
			to = "final"
		}
		c.AddEdgeWeight(from, to, e.Weight)
	}
	assert.True(t, m.Equal(c.Merge(a, nil)))
}

func TestMergeWithMapping(t *testing.T) {
	a := newAut()
	a.AddEdge("initial", "x1")
	a.AddEdge("x1", "final")
	b := newAut()
	b.AddEdge("initial", "x2")
	b.AddEdge("x2", "final")

	m := a.Merge(b, func(n string) string {
		if n == "x2" {
			return "x1"
		}
		return n
	})
	assert.Equal(t, 3, m.NodeCount())
	assert.Equal(t, 2, m.EdgeWeight("initial", "x1"))
	assert.Equal(t, 2, m.EdgeWeight("x1", "final"))
}

func TestRelabel(t *testing.T) {
	a := newAut()
	a.AddEdge("initial", "p1")
	a.AddEdge("p1", "p2")
	a.AddEdge("p2", "final")

	r := a.Relabel(func(n string) string { return "p" })
	assert.Equal(t, []string{"initial", "final", "p"}, r.Nodes())
	assert.Equal(t, 1, r.EdgeWeight("p", "p"))
	assert.Equal(t, 1, r.EdgeWeight("initial", "p"))
	assert.True(t, a.ContainsNode("p1"))
}
