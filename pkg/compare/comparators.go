package compare

import (
	"slices"

	"github.com/gnames/xsdinfer/pkg/schema"
	"github.com/hashicorp/go-set/v3"
)

// Names of the comparator implementations.
const (
	Always = "always"
	Never  = "never"

	// children pattern
	Equals    = "equals"
	NodeBased = "node_based"
	Subsumed  = "subsumed"

	// attribute list
	SameAttributes = "same_attributes"
	Strict         = "strict"
	Subset         = "subset"

	// enum (Equals is shared)
	SameBuiltin  = "same_builtin"
	ValueOverlap = "value_overlap"
)

var childrenPatterns = map[string]ChildrenPatternComparator{
	Always:    ChildrenPatternFunc(always2[*schema.Automaton]),
	Never:     ChildrenPatternFunc(never2[*schema.Automaton]),
	Equals:    ChildrenPatternFunc(equalPatterns),
	NodeBased: ChildrenPatternFunc(sameChildren),
	Subsumed:  ChildrenPatternFunc(subsumedChildren),
}

var attributeLists = map[string]AttributeListComparator{
	Always:         AttributeListFunc(always2[[]schema.Attribute]),
	Never:          AttributeListFunc(never2[[]schema.Attribute]),
	SameAttributes: AttributeListFunc(sameAttributes),
	Strict:         AttributeListFunc(strictAttributes),
	Subset:         AttributeListFunc(subsetAttributes),
}

var enums = map[string]EnumComparator{
	Always:       EnumFunc(always2[*schema.SimpleType]),
	Never:        EnumFunc(never2[*schema.SimpleType]),
	Equals:       EnumFunc(equalEnums),
	SameBuiltin:  EnumFunc(sameBuiltin),
	ValueOverlap: EnumFunc(valueOverlap),
}

func always2[T any](_, _ T) bool { return true }

func never2[T any](_, _ T) bool { return false }

func childNames(a *schema.Automaton) *set.Set[schema.QName] {
	res := set.New[schema.QName](a.NodeCount())
	for _, id := range a.ElementNodes() {
		res.Insert(id.QName())
	}
	return res
}

type qnameEdge struct {
	from, to schema.QName
}

func edgeNames(a *schema.Automaton) *set.Set[qnameEdge] {
	res := set.New[qnameEdge](a.EdgeCount())
	for _, e := range a.Edges() {
		res.Insert(qnameEdge{from: e.From.QName(), to: e.To.QName()})
	}
	return res
}

// equalPatterns accepts automata with at least one child and the same
// edges between the same child names. Weights and child types are ignored.
func equalPatterns(a, b *schema.Automaton) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	return childNames(a).Equal(childNames(b)) && edgeNames(a).Equal(edgeNames(b))
}

func sameChildren(a, b *schema.Automaton) bool {
	return childNames(a).Equal(childNames(b))
}

func subsumedChildren(a, b *schema.Automaton) bool {
	na, nb := childNames(a), childNames(b)
	return na.Subset(nb) || nb.Subset(na)
}

func attributeNames(as []schema.Attribute) *set.Set[schema.QName] {
	res := set.New[schema.QName](len(as))
	for _, a := range as {
		res.Insert(a.QName())
	}
	return res
}

func sameAttributes(a, b []schema.Attribute) bool {
	return attributeNames(a).Equal(attributeNames(b))
}

func strictAttributes(a, b []schema.Attribute) bool {
	if !sameAttributes(a, b) {
		return false
	}
	optional := make(map[schema.QName]bool, len(a))
	for _, at := range a {
		optional[at.QName()] = at.Optional
	}
	for _, bt := range b {
		if optional[bt.QName()] != bt.Optional {
			return false
		}
	}
	return true
}

func subsetAttributes(a, b []schema.Attribute) bool {
	na, nb := attributeNames(a), attributeNames(b)
	return na.Subset(nb) || nb.Subset(na)
}

// equalEnums accepts two enumerations of the same builtin with the same
// values.
func equalEnums(a, b *schema.SimpleType) bool {
	if !a.Enum || !b.Enum || a.Builtin != b.Builtin {
		return false
	}
	return len(a.Values) == len(b.Values) &&
		!slices.ContainsFunc(a.Values, func(v string) bool { return !b.HasValue(v) })
}

func sameBuiltin(a, b *schema.SimpleType) bool {
	return a.Builtin == b.Builtin
}

func valueOverlap(a, b *schema.SimpleType) bool {
	if len(a.Values) == 0 && len(b.Values) == 0 {
		return true
	}
	return slices.ContainsFunc(a.Values, b.HasValue)
}
