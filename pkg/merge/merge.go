// Package merge unifies similar types of an inferred schema.
//
// A Merger repeatedly scans the simple and then the complex types of a
// schema and merges the first pair its comparators accept, until a full
// scan finds nothing. Merging two complex types also merges, without
// asking the comparators, every pair of types that the merge forces to
// coincide: child element types that end up under the same name in the
// merged content model, the simple types of shared attributes, and the
// text types.
package merge

import (
	"log/slog"
	"slices"

	"github.com/gnames/xsdinfer/pkg/compare"
	"github.com/gnames/xsdinfer/pkg/datatype"
	"github.com/gnames/xsdinfer/pkg/schema"
)

// DefaultSeparator joins the names of merged types.
const DefaultSeparator = "_and_"

// Merger merges the types of a schema.
type Merger struct {
	policy      datatype.Policy
	comparators compare.Comparators
	separator   string
}

// Option configures a Merger.
type Option func(*Merger)

// OptSeparator sets the string that joins the names of merged types.
// Empty strings are ignored.
func OptSeparator(s string) Option {
	return func(m *Merger) {
		if s != "" {
			m.separator = s
		}
	}
}

// New creates a Merger. The policy recomputes the builtin type and the
// enumeration flag of merged simple types.
func New(
	policy datatype.Policy,
	comparators compare.Comparators,
	opts ...Option,
) *Merger {
	res := &Merger{
		policy:      policy,
		comparators: comparators,
		separator:   DefaultSeparator,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Summary counts the merges of a run.
type Summary struct {
	// ComplexMerges and SimpleMerges were accepted by a comparator.
	ComplexMerges int
	SimpleMerges  int
	// ForcedComplexMerges and ForcedSimpleMerges were required by other
	// merges.
	ForcedComplexMerges int
	ForcedSimpleMerges  int
	// ComplexTypes and SimpleTypes are the sizes of the type tables after
	// the run.
	ComplexTypes int
	SimpleTypes  int
}

// Merge merges accepted pairs of types until no comparator accepts any
// pair, then makes sure no content model has two children with the same
// name and different types.
func (m *Merger) Merge(s *schema.Schema) Summary {
	var res Summary
	for {
		if a, b, ok := m.simplePair(s); ok {
			m.session(s, &res).mergeSimple(a, b, false)
			continue
		}
		if a, b, ok := m.complexPair(s); ok {
			m.session(s, &res).mergeComplex(a, b, false)
			continue
		}
		break
	}
	m.session(s, &res).reconcileAll()

	res.ComplexTypes = len(s.ComplexTypes)
	res.SimpleTypes = len(s.SimpleTypes)
	slog.Debug("Merged types",
		"complex", res.ComplexMerges,
		"simple", res.SimpleMerges,
		"forced_complex", res.ForcedComplexMerges,
		"forced_simple", res.ForcedSimpleMerges,
	)
	return res
}

// MergeComplexTypes merges the complex types a and b together with every
// merge it forces, and returns the final name of the merged type. Both
// types must exist and differ.
func (m *Merger) MergeComplexTypes(s *schema.Schema, a, b string) string {
	ss := m.session(s, &Summary{})
	ss.mergeComplex(a, b, false)
	return ss.resolveComplex(a)
}

// MergeSimpleTypes merges the simple types a and b and returns the name
// of the merged type. Both types must exist and differ.
func (m *Merger) MergeSimpleTypes(s *schema.Schema, a, b string) string {
	ss := m.session(s, &Summary{})
	ss.mergeSimple(a, b, false)
	return ss.resolveSimple(a)
}

// complexPair finds the first pair of complex types that either tier
// accepts. The same-name tier applies only to types of elements that share
// a qualified name.
func (m *Merger) complexPair(s *schema.Schema) (string, string, bool) {
	positions := make(map[string][]schema.QName)
	for _, e := range s.SortedElements() {
		positions[e.Type] = append(positions[e.Type], e.QName())
	}
	names := s.ComplexTypeNames()
	for i, a := range names {
		for _, b := range names[i+1:] {
			ca, cb := s.ComplexTypes[a], s.ComplexTypes[b]
			if m.comparators.General.AcceptComplex(ca, cb) {
				return a, b, true
			}
			if overlap(positions[a], positions[b]) &&
				m.comparators.SameName.AcceptComplex(ca, cb) {
				return a, b, true
			}
		}
	}
	return "", "", false
}

// simplePair finds the first pair of simple types that either tier
// accepts. Simple types share a position when they hold the text or the
// same attribute of elements that share a qualified name.
func (m *Merger) simplePair(s *schema.Schema) (string, string, bool) {
	positions := make(map[string][]valuePosition)
	for _, e := range s.SortedElements() {
		ct, ok := s.ComplexTypes[e.Type]
		if !ok {
			continue
		}
		positions[ct.TextType] = append(positions[ct.TextType],
			valuePosition{element: e.QName(), node: schema.TextLabel})
		for _, a := range ct.Attributes {
			positions[a.SimpleType] = append(positions[a.SimpleType],
				valuePosition{element: e.QName(), node: a.Label()})
		}
	}
	names := s.SimpleTypeNames()
	for i, a := range names {
		for _, b := range names[i+1:] {
			sa, sb := s.SimpleTypes[a], s.SimpleTypes[b]
			if m.comparators.General.AcceptSimple(sa, sb) {
				return a, b, true
			}
			if overlap(positions[a], positions[b]) &&
				m.comparators.SameName.AcceptSimple(sa, sb) {
				return a, b, true
			}
		}
	}
	return "", "", false
}

type valuePosition struct {
	element schema.QName
	node    string
}

func overlap[T comparable](a, b []T) bool {
	return slices.ContainsFunc(a, func(v T) bool { return slices.Contains(b, v) })
}
