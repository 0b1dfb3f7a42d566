package compare_test

import (
	"testing"

	"github.com/gnames/xsdinfer/pkg/compare"
	"github.com/gnames/xsdinfer/pkg/datatype"
	"github.com/gnames/xsdinfer/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pattern(typ string, names ...string) *schema.Automaton {
	res := schema.NewAutomaton()
	prev := schema.Initial
	for _, n := range names {
		id := schema.ElementID{Name: n, Type: typ + "-" + n}
		res.AddEdge(prev, id)
		prev = id
	}
	res.AddEdge(prev, schema.Final)
	return res
}

func simple(builtin datatype.Builtin, enum bool, values ...string) *schema.SimpleType {
	res := schema.NewSimpleType("st")
	res.Builtin = builtin
	res.Enum = enum
	for _, v := range values {
		res.AddValue(v)
	}
	return res
}

func attrs(names ...string) []schema.Attribute {
	res := make([]schema.Attribute, len(names))
	for i, n := range names {
		res[i] = schema.Attribute{Name: n}
	}
	return res
}

func TestChildrenPattern(t *testing.T) {
	tests := []struct {
		msg     string
		name    string
		a, b    *schema.Automaton
		accepts bool
	}{
		{"equals same order", compare.Equals, pattern("A", "x", "y"), pattern("B", "x", "y"), true},
		{"equals other order", compare.Equals, pattern("A", "x", "y"), pattern("B", "y", "x"), false},
		{"equals no children", compare.Equals, pattern("A"), pattern("B"), false},
		{"node based other order", compare.NodeBased, pattern("A", "x", "y"), pattern("B", "y", "x"), true},
		{"node based no children", compare.NodeBased, pattern("A"), pattern("B"), true},
		{"node based other names", compare.NodeBased, pattern("A", "x"), pattern("B", "y"), false},
		{"subsumed", compare.Subsumed, pattern("A", "x"), pattern("B", "x", "y"), true},
		{"subsumed disjoint", compare.Subsumed, pattern("A", "x"), pattern("B", "y"), false},
		{"always", compare.Always, pattern("A", "x"), pattern("B", "y"), true},
		{"never", compare.Never, pattern("A", "x"), pattern("A", "x"), false},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			c, err := compare.Uniform(v.name, compare.Always, compare.Always)
			require.NoError(t, err)
			assert.Equal(t, v.accepts, c.General.ChildrenPattern.Compare(v.a, v.b))
			assert.Equal(t, v.accepts, c.General.ChildrenPattern.Compare(v.b, v.a))
		})
	}
}

func TestAttributeList(t *testing.T) {
	opt := attrs("a", "b")
	opt[1].Optional = true
	tests := []struct {
		msg     string
		name    string
		a, b    []schema.Attribute
		accepts bool
	}{
		{"same", compare.SameAttributes, attrs("a", "b"), attrs("b", "a"), true},
		{"same empty", compare.SameAttributes, nil, nil, true},
		{"same differ", compare.SameAttributes, attrs("a"), attrs("a", "b"), false},
		{"strict optional differs", compare.Strict, attrs("a", "b"), opt, false},
		{"strict", compare.Strict, opt, opt, true},
		{"subset", compare.Subset, attrs("a"), attrs("a", "b"), true},
		{"subset disjoint", compare.Subset, attrs("a"), attrs("b"), false},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			c, err := compare.Uniform(compare.Always, v.name, compare.Always)
			require.NoError(t, err)
			assert.Equal(t, v.accepts, c.SameName.AttributeList.Compare(v.a, v.b))
		})
	}
}

func TestEnum(t *testing.T) {
	tests := []struct {
		msg     string
		name    string
		a, b    *schema.SimpleType
		accepts bool
	}{
		{"equals", compare.Equals,
			simple(datatype.String, true, "a", "b"), simple(datatype.String, true, "b", "a"), true},
		{"equals not enum", compare.Equals,
			simple(datatype.String, false, "a"), simple(datatype.String, false, "a"), false},
		{"equals other values", compare.Equals,
			simple(datatype.String, true, "a", "b"), simple(datatype.String, true, "a", "c"), false},
		{"same builtin", compare.SameBuiltin,
			simple(datatype.Integer, false, "1"), simple(datatype.Integer, true, "2", "3"), true},
		{"other builtin", compare.SameBuiltin,
			simple(datatype.Integer, false, "1"), simple(datatype.String, false, "x"), false},
		{"overlap", compare.ValueOverlap,
			simple(datatype.String, false, "a", "b"), simple(datatype.String, false, "b", "c"), true},
		{"no overlap", compare.ValueOverlap,
			simple(datatype.String, false, "a"), simple(datatype.String, false, "c"), false},
		{"both empty", compare.ValueOverlap,
			simple(datatype.String, false), simple(datatype.String, false), true},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			c, err := compare.Uniform(compare.Always, compare.Always, v.name)
			require.NoError(t, err)
			assert.Equal(t, v.accepts, c.General.AcceptSimple(v.a, v.b))
		})
	}
}

func TestTier(t *testing.T) {
	a := schema.NewComplexType("A", "A-#text")
	a.Automaton = pattern("A", "x")
	a.Attributes = attrs("k")
	b := schema.NewComplexType("B", "B-#text")
	b.Automaton = pattern("B", "x")

	c, err := compare.Uniform(compare.NodeBased, compare.SameAttributes, compare.Equals)
	require.NoError(t, err)
	assert.False(t, c.General.AcceptComplex(a, b))
	b.Attributes = attrs("k")
	assert.True(t, c.General.AcceptComplex(a, b))

	var zero compare.Tier
	assert.False(t, zero.AcceptComplex(a, b))
	assert.False(t, zero.AcceptSimple(schema.NewSimpleType("x"), schema.NewSimpleType("y")))
}

func TestUnknownName(t *testing.T) {
	c, err := compare.New(compare.Names{
		ChildrenPattern:         "fuzzy",
		SameNameChildrenPattern: compare.Always,
		AttributeList:           compare.Always,
		SameNameAttributeList:   compare.Always,
		Enum:                    compare.Always,
		SameNameEnum:            "nope",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuzzy, nope")
	a := pattern("A", "x")
	assert.False(t, c.General.ChildrenPattern.Compare(a, a))
	assert.True(t, c.SameName.ChildrenPattern.Compare(a, a))
	st := schema.NewSimpleType("x")
	assert.False(t, c.SameName.Enum.Compare(st, st))
}
