// Package regex holds the regular-expression form of a content model and
// the rewrite passes that bring it to a canonical shape.
//
// Expr is a closed sum type. Its variants are Element, Empty, Sequence,
// Choice, All, Optional, Repeated (0..N) and RepeatedAtLeastOnce (1..N).
// Trees are treated as values: passes never modify their input and build
// new nodes only where something changed.
package regex

import (
	"fmt"
	"strings"
)

// Expr is a node of a regular expression over symbols of type N.
type Expr[N comparable] interface {
	fmt.Stringer
	// expr marks the variants and ties N to the method set.
	expr(N)
}

// Element is a leaf that matches a single symbol.
type Element[N comparable] struct {
	Symbol N
}

// Empty matches the empty word.
type Empty[N comparable] struct{}

// Sequence matches its children in order.
type Sequence[N comparable] struct {
	Children []Expr[N]
}

// Choice matches exactly one of its children.
type Choice[N comparable] struct {
	Children []Expr[N]
}

// All matches its element children in any order. It may contain only
// Element leaves.
type All[N comparable] struct {
	Children []Expr[N]
}

// Optional matches its child zero or one time.
type Optional[N comparable] struct {
	Child Expr[N]
}

// Repeated matches its child zero or more times.
type Repeated[N comparable] struct {
	Child Expr[N]
}

// RepeatedAtLeastOnce matches its child one or more times.
type RepeatedAtLeastOnce[N comparable] struct {
	Child Expr[N]
}

func (*Element[N]) expr(N) {}
func (*Empty[N]) expr(N) {}
func (*Sequence[N]) expr(N) {}
func (*Choice[N]) expr(N) {}
func (*All[N]) expr(N) {}
func (*Optional[N]) expr(N) {}
func (*Repeated[N]) expr(N) {}
func (*RepeatedAtLeastOnce[N]) expr(N) {}

// Elem creates an Element leaf.
func Elem[N comparable](symbol N) Expr[N] {
	return &Element[N]{Symbol: symbol}
}

// Eps creates an Empty leaf.
func Eps[N comparable]() Expr[N] {
	return &Empty[N]{}
}

// Seq creates a Sequence.
func Seq[N comparable](children ...Expr[N]) Expr[N] {
	mustChildren("Sequence", children)
	return &Sequence[N]{Children: children}
}

// Alt creates a Choice.
func Alt[N comparable](children ...Expr[N]) Expr[N] {
	mustChildren("Choice", children)
	return &Choice[N]{Children: children}
}

// AllOf creates an All group. Every child must be an Element.
func AllOf[N comparable](children ...Expr[N]) Expr[N] {
	mustChildren("All", children)
	for _, v := range children {
		if _, ok := v.(*Element[N]); !ok {
			panic(fmt.Sprintf("regex: All accepts only elements, got %s", v))
		}
	}
	return &All[N]{Children: children}
}

// Opt creates an Optional.
func Opt[N comparable](child Expr[N]) Expr[N] {
	mustChild("Optional", child)
	return &Optional[N]{Child: child}
}

// Star creates a Repeated.
func Star[N comparable](child Expr[N]) Expr[N] {
	mustChild("Repeated", child)
	return &Repeated[N]{Child: child}
}

// Plus creates a RepeatedAtLeastOnce.
func Plus[N comparable](child Expr[N]) Expr[N] {
	mustChild("RepeatedAtLeastOnce", child)
	return &RepeatedAtLeastOnce[N]{Child: child}
}

func mustChildren[N comparable](kind string, children []Expr[N]) {
	for _, v := range children {
		mustChild(kind, v)
	}
}

func mustChild[N comparable](kind string, child Expr[N]) {
	if child == nil {
		panic(fmt.Sprintf("regex: %s has a nil child", kind))
	}
}

// Len returns the number of children.
func (s *Sequence[N]) Len() int { return len(s.Children) }

// Len returns the number of children.
func (c *Choice[N]) Len() int { return len(c.Children) }

// Len returns the number of children.
func (a *All[N]) Len() int { return len(a.Children) }

func (e *Element[N]) String() string {
	return fmt.Sprint(e.Symbol)
}

func (*Empty[N]) String() string {
	return "ε"
}

func (s *Sequence[N]) String() string {
	return join(s.Children, ", ")
}

func (c *Choice[N]) String() string {
	return join(c.Children, " | ")
}

func (a *All[N]) String() string {
	return join(a.Children, " & ")
}

func (o *Optional[N]) String() string {
	return o.Child.String() + "?"
}

func (r *Repeated[N]) String() string {
	return r.Child.String() + "*"
}

func (r *RepeatedAtLeastOnce[N]) String() string {
	return r.Child.String() + "+"
}

func join[N comparable](children []Expr[N], sep string) string {
	parts := make([]string, len(children))
	for i, v := range children {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// Children returns the direct children of e. Leaves have none.
func Children[N comparable](e Expr[N]) []Expr[N] {
	switch v := e.(type) {
	case *Sequence[N]:
		return v.Children
	case *Choice[N]:
		return v.Children
	case *All[N]:
		return v.Children
	case *Optional[N]:
		return []Expr[N]{v.Child}
	case *Repeated[N]:
		return []Expr[N]{v.Child}
	case *RepeatedAtLeastOnce[N]:
		return []Expr[N]{v.Child}
	default:
		return nil
	}
}

// Symbols returns the symbols of all Element leaves, left to right.
func Symbols[N comparable](e Expr[N]) []N {
	if v, ok := e.(*Element[N]); ok {
		return []N{v.Symbol}
	}
	var res []N
	for _, c := range Children(e) {
		res = append(res, Symbols(c)...)
	}
	return res
}

// Equal reports whether two trees are structurally identical.
func Equal[N comparable](a, b Expr[N]) bool {
	switch x := a.(type) {
	case *Element[N]:
		y, ok := b.(*Element[N])
		return ok && x.Symbol == y.Symbol
	case *Empty[N]:
		_, ok := b.(*Empty[N])
		return ok
	case *Sequence[N]:
		y, ok := b.(*Sequence[N])
		return ok && equalAll(x.Children, y.Children)
	case *Choice[N]:
		y, ok := b.(*Choice[N])
		return ok && equalAll(x.Children, y.Children)
	case *All[N]:
		y, ok := b.(*All[N])
		return ok && equalAll(x.Children, y.Children)
	case *Optional[N]:
		y, ok := b.(*Optional[N])
		return ok && Equal(x.Child, y.Child)
	case *Repeated[N]:
		y, ok := b.(*Repeated[N])
		return ok && Equal(x.Child, y.Child)
	case *RepeatedAtLeastOnce[N]:
		y, ok := b.(*RepeatedAtLeastOnce[N])
		return ok && Equal(x.Child, y.Child)
	default:
		return false
	}
}

func equalAll[N comparable](a, b []Expr[N]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Size returns the number of nodes in the tree.
func Size[N comparable](e Expr[N]) int {
	res := 1
	for _, c := range Children(e) {
		res += Size(c)
	}
	return res
}
