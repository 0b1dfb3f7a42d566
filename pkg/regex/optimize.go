package regex

// Optimizer is a single rewrite pass. Optimize returns the rewritten tree
// and reports whether anything changed. A pass that has nothing to do
// returns its input as is.
type Optimizer[N comparable] interface {
	Optimize(e Expr[N]) (Expr[N], bool)
}

// EmptyOptimizer collapses a Sequence or Choice that has no children, or
// whose children are all Empty, into a single Empty.
type EmptyOptimizer[N comparable] struct{}

// EmptyChildOptimizer removes Empty children from Sequence and Choice nodes.
// All is left alone because it holds only elements.
type EmptyChildOptimizer[N comparable] struct{}

// ChoiceOptimizer splices the children of a nested Choice into its parent
// Choice.
type ChoiceOptimizer[N comparable] struct{}

// SequenceOptimizer splices the children of a nested Sequence into its
// parent Sequence.
type SequenceOptimizer[N comparable] struct{}

// SingletonOptimizer replaces a Sequence, Choice or All with exactly one
// child by that child.
type SingletonOptimizer[N comparable] struct{}

// SingularOptimizer collapses two nested multiplicity wrappers into one.
// Two Optional layers stay Optional, two RepeatedAtLeastOnce layers stay
// RepeatedAtLeastOnce, every other combination becomes Repeated.
type SingularOptimizer[N comparable] struct{}

func (EmptyOptimizer[N]) Optimize(e Expr[N]) (Expr[N], bool) {
	return rewrite(e, func(e Expr[N]) (Expr[N], bool) {
		var children []Expr[N]
		switch v := e.(type) {
		case *Sequence[N]:
			children = v.Children
		case *Choice[N]:
			children = v.Children
		default:
			return e, false
		}
		for _, c := range children {
			if _, ok := c.(*Empty[N]); !ok {
				return e, false
			}
		}
		return Eps[N](), true
	})
}

func (EmptyChildOptimizer[N]) Optimize(e Expr[N]) (Expr[N], bool) {
	return rewrite(e, func(e Expr[N]) (Expr[N], bool) {
		switch v := e.(type) {
		case *Sequence[N]:
			if cs, ok := withoutEmpty(v.Children); ok {
				return &Sequence[N]{Children: cs}, true
			}
		case *Choice[N]:
			if cs, ok := withoutEmpty(v.Children); ok {
				return &Choice[N]{Children: cs}, true
			}
		}
		return e, false
	})
}

func withoutEmpty[N comparable](children []Expr[N]) ([]Expr[N], bool) {
	res := make([]Expr[N], 0, len(children))
	for _, c := range children {
		if _, ok := c.(*Empty[N]); !ok {
			res = append(res, c)
		}
	}
	return res, len(res) != len(children)
}

func (ChoiceOptimizer[N]) Optimize(e Expr[N]) (Expr[N], bool) {
	return rewrite(e, func(e Expr[N]) (Expr[N], bool) {
		v, ok := e.(*Choice[N])
		if !ok {
			return e, false
		}
		cs, changed := splice(v.Children, func(c Expr[N]) []Expr[N] {
			if inner, ok := c.(*Choice[N]); ok {
				return inner.Children
			}
			return nil
		})
		if !changed {
			return e, false
		}
		return &Choice[N]{Children: cs}, true
	})
}

func (SequenceOptimizer[N]) Optimize(e Expr[N]) (Expr[N], bool) {
	return rewrite(e, func(e Expr[N]) (Expr[N], bool) {
		v, ok := e.(*Sequence[N])
		if !ok {
			return e, false
		}
		cs, changed := splice(v.Children, func(c Expr[N]) []Expr[N] {
			if inner, ok := c.(*Sequence[N]); ok {
				return inner.Children
			}
			return nil
		})
		if !changed {
			return e, false
		}
		return &Sequence[N]{Children: cs}, true
	})
}

// splice replaces every child for which inner returns a non-nil slice by
// the content of that slice.
func splice[N comparable](
	children []Expr[N],
	inner func(Expr[N]) []Expr[N],
) ([]Expr[N], bool) {
	var changed bool
	res := make([]Expr[N], 0, len(children))
	for _, c := range children {
		if cs := inner(c); cs != nil {
			res = append(res, cs...)
			changed = true
			continue
		}
		res = append(res, c)
	}
	return res, changed
}

func (SingletonOptimizer[N]) Optimize(e Expr[N]) (Expr[N], bool) {
	return rewrite(e, func(e Expr[N]) (Expr[N], bool) {
		switch v := e.(type) {
		case *Sequence[N]:
			if len(v.Children) == 1 {
				return v.Children[0], true
			}
		case *Choice[N]:
			if len(v.Children) == 1 {
				return v.Children[0], true
			}
		case *All[N]:
			if len(v.Children) == 1 {
				return v.Children[0], true
			}
		}
		return e, false
	})
}

type multiplicity int

const (
	noMultiplicity multiplicity = iota
	optional
	repeated
	repeatedAtLeastOnce
)

func multiplicityOf[N comparable](e Expr[N]) (multiplicity, Expr[N]) {
	switch v := e.(type) {
	case *Optional[N]:
		return optional, v.Child
	case *Repeated[N]:
		return repeated, v.Child
	case *RepeatedAtLeastOnce[N]:
		return repeatedAtLeastOnce, v.Child
	}
	return noMultiplicity, nil
}

func (SingularOptimizer[N]) Optimize(e Expr[N]) (Expr[N], bool) {
	return rewrite(e, func(e Expr[N]) (Expr[N], bool) {
		outer, child := multiplicityOf(e)
		if outer == noMultiplicity {
			return e, false
		}
		inner, grandchild := multiplicityOf(child)
		if inner == noMultiplicity {
			return e, false
		}
		switch {
		case outer == optional && inner == optional:
			return Opt(grandchild), true
		case outer == repeatedAtLeastOnce && inner == repeatedAtLeastOnce:
			return Plus(grandchild), true
		default:
			return Star(grandchild), true
		}
	})
}

// rewrite applies rule to every node of e, children before parents.
// Parents of changed children are rebuilt; untouched subtrees are shared
// with the input.
func rewrite[N comparable](
	e Expr[N],
	rule func(Expr[N]) (Expr[N], bool),
) (Expr[N], bool) {
	var changed bool
	switch v := e.(type) {
	case *Sequence[N]:
		if cs, ok := rewriteAll(v.Children, rule); ok {
			e, changed = &Sequence[N]{Children: cs}, true
		}
	case *Choice[N]:
		if cs, ok := rewriteAll(v.Children, rule); ok {
			e, changed = &Choice[N]{Children: cs}, true
		}
	case *All[N]:
		if cs, ok := rewriteAll(v.Children, rule); ok {
			e, changed = &All[N]{Children: cs}, true
		}
	case *Optional[N]:
		if c, ok := rewrite(v.Child, rule); ok {
			e, changed = &Optional[N]{Child: c}, true
		}
	case *Repeated[N]:
		if c, ok := rewrite(v.Child, rule); ok {
			e, changed = &Repeated[N]{Child: c}, true
		}
	case *RepeatedAtLeastOnce[N]:
		if c, ok := rewrite(v.Child, rule); ok {
			e, changed = &RepeatedAtLeastOnce[N]{Child: c}, true
		}
	}
	res, ok := rule(e)
	return res, changed || ok
}

func rewriteAll[N comparable](
	children []Expr[N],
	rule func(Expr[N]) (Expr[N], bool),
) ([]Expr[N], bool) {
	var res []Expr[N]
	for i, c := range children {
		nc, ok := rewrite(c, rule)
		if ok && res == nil {
			res = make([]Expr[N], len(children))
			copy(res, children[:i])
		}
		if res != nil {
			res[i] = nc
		}
	}
	return res, res != nil
}

// Pipeline runs a list of passes repeatedly until a full round leaves the
// tree unchanged.
type Pipeline[N comparable] struct {
	passes []Optimizer[N]
}

// NewPipeline creates a pipeline that runs passes in the given order.
func NewPipeline[N comparable](passes ...Optimizer[N]) *Pipeline[N] {
	return &Pipeline[N]{passes: passes}
}

// DefaultPipeline returns the pipeline used to canonicalize content
// models: empty handling first, then unwrapping and flattening, then
// multiplicity collapsing.
func DefaultPipeline[N comparable]() *Pipeline[N] {
	return NewPipeline[N](
		EmptyChildOptimizer[N]{},
		EmptyOptimizer[N]{},
		SingletonOptimizer[N]{},
		ChoiceOptimizer[N]{},
		SequenceOptimizer[N]{},
		SingularOptimizer[N]{},
	)
}

// Optimize runs the pipeline to its fixed point.
func (p *Pipeline[N]) Optimize(e Expr[N]) (Expr[N], bool) {
	var changed bool
	for {
		var round bool
		for _, pass := range p.passes {
			var ok bool
			e, ok = pass.Optimize(e)
			round = round || ok
		}
		if !round {
			return e, changed
		}
		changed = true
	}
}
