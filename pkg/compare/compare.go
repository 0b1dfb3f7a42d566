// Package compare provides the predicates that decide whether two inferred
// types are similar enough to be merged.
package compare

import (
	"github.com/gnames/xsdinfer/pkg/schema"
)

// ChildrenPatternComparator compares two content models.
type ChildrenPatternComparator interface {
	Compare(a, b *schema.Automaton) bool
}

// AttributeListComparator compares two attribute lists.
type AttributeListComparator interface {
	Compare(a, b []schema.Attribute) bool
}

// EnumComparator compares two simple types.
type EnumComparator interface {
	Compare(a, b *schema.SimpleType) bool
}

// ChildrenPatternFunc adapts a function to ChildrenPatternComparator.
type ChildrenPatternFunc func(a, b *schema.Automaton) bool

// Compare calls f(a, b).
func (f ChildrenPatternFunc) Compare(a, b *schema.Automaton) bool { return f(a, b) }

// AttributeListFunc adapts a function to AttributeListComparator.
type AttributeListFunc func(a, b []schema.Attribute) bool

// Compare calls f(a, b).
func (f AttributeListFunc) Compare(a, b []schema.Attribute) bool { return f(a, b) }

// EnumFunc adapts a function to EnumComparator.
type EnumFunc func(a, b *schema.SimpleType) bool

// Compare calls f(a, b).
func (f EnumFunc) Compare(a, b *schema.SimpleType) bool { return f(a, b) }

// Tier is one level of comparators. A complex type pair is accepted when
// both its children and its attribute comparators accept it. A nil
// comparator never accepts.
type Tier struct {
	ChildrenPattern ChildrenPatternComparator
	AttributeList   AttributeListComparator
	Enum            EnumComparator
}

// AcceptComplex reports whether the tier accepts merging a and b.
func (t Tier) AcceptComplex(a, b *schema.ComplexType) bool {
	if t.ChildrenPattern == nil || t.AttributeList == nil {
		return false
	}
	return t.ChildrenPattern.Compare(a.Automaton, b.Automaton) &&
		t.AttributeList.Compare(a.Attributes, b.Attributes)
}

// AcceptSimple reports whether the tier accepts merging a and b.
func (t Tier) AcceptSimple(a, b *schema.SimpleType) bool {
	if t.Enum == nil {
		return false
	}
	return t.Enum.Compare(a, b)
}

// Comparators holds the general tier, used for any pair of types, and the
// same-name tier, used only for types at parallel tree positions.
type Comparators struct {
	General  Tier
	SameName Tier
}

// Names selects comparator implementations by name.
type Names struct {
	ChildrenPattern         string
	SameNameChildrenPattern string
	AttributeList           string
	SameNameAttributeList   string
	Enum                    string
	SameNameEnum            string
}

// New builds comparators from their names. Unknown names fall back to
// "never"; they are reported by the returned error, and the comparators
// are usable either way.
func New(n Names) (Comparators, error) {
	var errs []string
	cp := func(name string) ChildrenPatternComparator {
		res, ok := childrenPatterns[name]
		if !ok {
			errs = append(errs, name)
			return ChildrenPatternFunc(never2[*schema.Automaton])
		}
		return res
	}
	al := func(name string) AttributeListComparator {
		res, ok := attributeLists[name]
		if !ok {
			errs = append(errs, name)
			return AttributeListFunc(never2[[]schema.Attribute])
		}
		return res
	}
	en := func(name string) EnumComparator {
		res, ok := enums[name]
		if !ok {
			errs = append(errs, name)
			return EnumFunc(never2[*schema.SimpleType])
		}
		return res
	}

	res := Comparators{
		General: Tier{
			ChildrenPattern: cp(n.ChildrenPattern),
			AttributeList:   al(n.AttributeList),
			Enum:            en(n.Enum),
		},
		SameName: Tier{
			ChildrenPattern: cp(n.SameNameChildrenPattern),
			AttributeList:   al(n.SameNameAttributeList),
			Enum:            en(n.SameNameEnum),
		},
	}
	if len(errs) > 0 {
		return res, UnknownComparatorError(errs)
	}
	return res, nil
}

// Uniform returns comparators that use the named implementations of each
// kind for both tiers.
func Uniform(childrenPattern, attributeList, enum string) (Comparators, error) {
	return New(Names{
		ChildrenPattern:         childrenPattern,
		SameNameChildrenPattern: childrenPattern,
		AttributeList:           attributeList,
		SameNameAttributeList:   attributeList,
		Enum:                    enum,
		SameNameEnum:            enum,
	})
}
