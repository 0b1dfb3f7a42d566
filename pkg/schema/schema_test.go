package schema_test

import (
	"testing"

	"github.com/gnames/xsdinfer/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(name, typ string) schema.ElementID {
	return schema.ElementID{Name: name, Type: typ}
}

// twoTypes builds a root of type R with children a (type A) and b (type B).
func twoTypes() *schema.Schema {
	s := schema.New(2)
	s.SimpleTypes["R-#text"] = schema.NewSimpleType("R-#text")
	s.SimpleTypes["A-#text"] = schema.NewSimpleType("A-#text")
	s.SimpleTypes["B-#text"] = schema.NewSimpleType("B-#text")

	root := schema.NewElement("", "root", "R")
	root.ValidRoot = true
	s.Elements[root.ID()] = root
	for _, e := range []*schema.Element{
		schema.NewElement("", "item", "A"),
		schema.NewElement("", "item", "B"),
	} {
		s.Elements[e.ID()] = e
	}

	r := schema.NewComplexType("R", "R-#text")
	r.Automaton.AddEdge(schema.Initial, id("item", "A"))
	r.Automaton.AddEdge(id("item", "A"), id("item", "B"))
	r.Automaton.AddEdge(id("item", "B"), schema.Final)
	s.ComplexTypes["R"] = r
	s.ComplexTypes["A"] = schema.NewComplexType("A", "A-#text")
	s.ComplexTypes["B"] = schema.NewComplexType("B", "B-#text")
	s.ComplexTypes["A"].SetAttribute(schema.Attribute{Name: "x", SimpleType: "A-#text"})

	st := s.Statistics.Entry("R")
	st.RecordInstance(0)
	st.RecordElement(0, id("item", "A"))
	st.RecordElement(1, id("item", "B"))
	st.RecordSubpattern(0, []schema.ElementID{id("item", "A"), id("item", "B")})
	return s
}

func TestQName(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("a", schema.QName{Name: "a"}.String())
	assert.Equal("urn:x:a", schema.QName{Namespace: "urn:x", Name: "a"}.String())
	assert.True(schema.Initial.IsPseudo())
	assert.False(id("a", "T").IsPseudo())
	assert.Equal("@urn:x:a", schema.AttributeLabel(schema.QName{Namespace: "urn:x", Name: "a"}))
}

func TestSimpleTypeValues(t *testing.T) {
	st := schema.NewSimpleType("T")
	for _, v := range []string{"b", "a", "b", "c", "a"} {
		st.AddValue(v)
	}
	assert.Equal(t, []string{"b", "a", "c"}, st.Values)
	assert.True(t, st.HasValue("c"))
	assert.False(t, st.HasValue("d"))
	assert.True(t, st.Whitespace)
}

func TestValidate(t *testing.T) {
	s := twoTypes()
	require.NoError(t, s.Validate())

	delete(s.SimpleTypes, "B-#text")
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing text type "B-#text"`)
}

func TestRenameComplexTypes(t *testing.T) {
	assert := assert.New(t)
	s := twoTypes()
	before := s.ComplexTypes["R"]

	s.ComplexTypes["A_and_B"] = schema.NewComplexType("A_and_B", "A-#text")
	delete(s.ComplexTypes, "A")
	delete(s.ComplexTypes, "B")
	s.RenameComplexTypes([]string{"A", "B"}, "A_and_B")

	merged := id("item", "A_and_B")
	assert.Len(s.Elements, 2)
	assert.Contains(s.Elements, merged)
	assert.NotContains(s.Elements, id("item", "A"))

	r := s.ComplexTypes["R"]
	assert.NotSame(before, r)
	assert.True(r.Automaton.ContainsNode(merged))
	assert.Equal(1, r.Automaton.EdgeWeight(merged, merged))
	assert.Equal(2, r.Automaton.Occurrences(merged))
	// the replaced value is untouched
	assert.True(before.Automaton.ContainsNode(id("item", "A")))

	st, ok := s.Statistics.Lookup("R")
	require.True(t, ok)
	assert.Equal([]int{1, 1}, st.Elements[merged])
	require.Len(t, st.Subpatterns, 1)
	for _, sp := range st.Subpatterns {
		assert.Equal([]schema.ElementID{merged, merged}, sp.Sequence)
	}
	require.NoError(t, s.Validate())
}

func TestRenameSimpleTypes(t *testing.T) {
	s := twoTypes()
	s.SimpleTypes["A-#text_and_B-#text"] = schema.NewSimpleType("A-#text_and_B-#text")
	s.RenameSimpleTypes([]string{"A-#text", "B-#text"}, "A-#text_and_B-#text")

	assert.Equal(t, "A-#text_and_B-#text", s.ComplexTypes["A"].TextType)
	assert.Equal(t, "A-#text_and_B-#text", s.ComplexTypes["B"].TextType)
	assert.Equal(t, "R-#text", s.ComplexTypes["R"].TextType)
	a, ok := s.ComplexTypes["A"].Attribute(schema.QName{Name: "x"})
	require.True(t, ok)
	assert.Equal(t, "A-#text_and_B-#text", a.SimpleType)
}

func TestQueries(t *testing.T) {
	s := twoTypes()
	roots := s.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, "root", roots[0].Name)
	assert.Len(t, s.ElementsOfType("A"), 1)
	assert.Equal(t, []string{"A", "B", "R"}, s.ComplexTypeNames())
}
