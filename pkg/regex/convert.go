package regex

import (
	"slices"

	"github.com/gnames/xsdinfer/pkg/automaton"
)

// Convert builds a regular expression from a content model.
//
// Strongly connected components of the element nodes become the building
// blocks: a single node without a self-loop is an Element, anything else is
// a RepeatedAtLeastOnce over the Choice of its members. Components are
// ordered topologically, and consecutive components that have no edges
// between each other are grouped into a Choice. A group is Optional when
// some edge jumps over it. The result is not optimized; run it through a
// Pipeline.
func Convert[N comparable](a *automaton.Extended[N]) Expr[N] {
	order := a.TopologicalOrder()
	pos := make(map[N]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	nodes := a.ElementNodes()
	if len(nodes) == 0 {
		return Eps[N]()
	}
	slices.SortFunc(nodes, func(x, y N) int { return pos[x] - pos[y] })

	comps := components(a, nodes)
	slices.SortFunc(comps, func(x, y []N) int {
		return pos[x[0]] - pos[y[0]]
	})
	comps = orderComponents(a, comps)

	// group components
	var groups [][][]N
	groupOf := make(map[N]int)
	for _, c := range comps {
		last := len(groups) - 1
		if last >= 0 && !connected(a, groups[last], c) {
			groups[last] = append(groups[last], c)
		} else {
			groups = append(groups, [][]N{c})
			last++
		}
		for _, n := range c {
			groupOf[n] = last
		}
	}
	groupOf[a.Initial()] = -1
	groupOf[a.Final()] = len(groups)

	skipped := make([]bool, len(groups))
	for _, e := range a.Edges() {
		from, to := groupOf[e.From], groupOf[e.To]
		for k := from + 1; k < to; k++ {
			skipped[k] = true
		}
	}

	res := make([]Expr[N], 0, len(groups))
	for i, g := range groups {
		alts := make([]Expr[N], 0, len(g))
		for _, c := range g {
			alts = append(alts, componentExpr(a, c))
		}
		var term Expr[N] = Alt(alts...)
		if skipped[i] {
			term = Opt(term)
		}
		res = append(res, term)
	}
	return Seq(res...)
}

func componentExpr[N comparable](a *automaton.Extended[N], c []N) Expr[N] {
	if len(c) == 1 && !a.HasSelfLoop(c[0]) {
		return Elem(c[0])
	}
	alts := make([]Expr[N], len(c))
	for i, n := range c {
		alts[i] = Elem(n)
	}
	return Plus(Alt(alts...))
}

// connected reports whether any edge links a member of group to a member
// of c, in either direction.
func connected[N comparable](a *automaton.Extended[N], group [][]N, c []N) bool {
	for _, g := range group {
		for _, x := range g {
			for _, y := range c {
				if a.EdgeWeight(x, y) > 0 || a.EdgeWeight(y, x) > 0 {
					return true
				}
			}
		}
	}
	return false
}

// components returns the strongly connected components among nodes using
// Tarjan's algorithm. Members of each component keep the order of nodes.
func components[N comparable](a *automaton.Extended[N], nodes []N) [][]N {
	rank := make(map[N]int, len(nodes))
	for i, n := range nodes {
		rank[n] = i
	}
	var (
		index   int
		stack   []N
		res     [][]N
		indices = make(map[N]int)
		low     = make(map[N]int)
		onStack = make(map[N]bool)
	)

	var connect func(n N)
	connect = func(n N) {
		indices[n] = index
		low[n] = index
		index++
		stack = append(stack, n)
		onStack[n] = true

		for _, m := range a.Successors(n) {
			if a.IsPseudo(m) {
				continue
			}
			if _, seen := indices[m]; !seen {
				connect(m)
				low[n] = min(low[n], low[m])
			} else if onStack[m] {
				low[n] = min(low[n], indices[m])
			}
		}

		if low[n] == indices[n] {
			var comp []N
			for {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[top] = false
				comp = append(comp, top)
				if top == n {
					break
				}
			}
			slices.SortFunc(comp, func(x, y N) int { return rank[x] - rank[y] })
			res = append(res, comp)
		}
	}

	for _, n := range nodes {
		if _, seen := indices[n]; !seen {
			connect(n)
		}
	}
	return res
}

// orderComponents sorts components topologically on the condensed graph.
// comps must be presorted by preference; ties keep that order.
func orderComponents[N comparable](a *automaton.Extended[N], comps [][]N) [][]N {
	compOf := make(map[N]int)
	for i, c := range comps {
		for _, n := range c {
			compOf[n] = i
		}
	}
	indegree := make([]int, len(comps))
	succ := make([]map[int]struct{}, len(comps))
	for i, c := range comps {
		succ[i] = make(map[int]struct{})
		for _, n := range c {
			for _, m := range a.Successors(n) {
				j, ok := compOf[m]
				if !ok || j == i {
					continue
				}
				if _, dup := succ[i][j]; !dup {
					succ[i][j] = struct{}{}
					indegree[j]++
				}
			}
		}
	}

	res := make([][]N, 0, len(comps))
	done := make([]bool, len(comps))
	for len(res) < len(comps) {
		for i := range comps {
			if done[i] || indegree[i] > 0 {
				continue
			}
			done[i] = true
			res = append(res, comps[i])
			for j := range succ[i] {
				indegree[j]--
			}
			break
		}
	}
	return res
}
