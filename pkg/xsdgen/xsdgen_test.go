package xsdgen_test

import (
	"bytes"
	"testing"

	"aqwari.net/xml/xmltree"
	"github.com/gnames/xsdinfer/pkg/datatype"
	"github.com/gnames/xsdinfer/pkg/extract"
	"github.com/gnames/xsdinfer/pkg/schema"
	"github.com/gnames/xsdinfer/pkg/xsdgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractDocs(t *testing.T, docs ...string) *schema.Schema {
	t.Helper()
	policy := datatype.NewPolicy(datatype.Thresholds{MinEnumValues: 2, MaxEnumValues: 20})
	x := extract.New(len(docs), policy)
	for i, d := range docs {
		root, err := xmltree.Parse([]byte(d))
		require.NoError(t, err)
		require.NoError(t, x.Add(i, root))
	}
	return x.Finish()
}

func TestContentModel(t *testing.T) {
	s := extractDocs(t, `<r><a/><b/></r>`, `<r><a/></r>`)
	assert.Equal(t, "(a, b?)", xsdgen.ContentModel(s.ComplexTypes["_r"].Automaton).String())
	assert.Equal(t, "ε", xsdgen.ContentModel(s.ComplexTypes["_r-_a"].Automaton).String())
}

func TestMarshal(t *testing.T) {
	assert := assert.New(t)
	s := extractDocs(t,
		`<r id="1"><!-- colors --><c>red</c><c>green</c></r>`,
		`<r><c>red</c><c>blue</c></r>`,
	)
	out, err := xsdgen.Marshal(s)
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(doc, `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" elementFormDefault="qualified">`)
	assert.Contains(doc, `<xs:element name="r" type="_r"></xs:element>`)
	assert.Contains(doc, `<xs:complexType name="_r">`)
	assert.Contains(doc, `<xs:documentation>colors</xs:documentation>`)
	assert.Contains(doc, `<xs:element name="c" type="_r-_c" maxOccurs="unbounded"></xs:element>`)
	assert.Contains(doc, `<xs:attribute name="id" type="xs:integer"></xs:attribute>`)
	assert.Contains(doc, `<xs:extension base="_r-_c-text">`)
	assert.Contains(doc, `<xs:simpleType name="_r-_c-text">`)
	assert.Contains(doc, `<xs:enumeration value="green"></xs:enumeration>`)

	root, err := xmltree.Parse(out)
	require.NoError(t, err)
	assert.Equal("http://www.w3.org/2001/XMLSchema", root.Name.Space)
	assert.Equal("schema", root.Name.Local)

	var buf bytes.Buffer
	require.NoError(t, xsdgen.Write(&buf, s))
	assert.Equal(out, buf.Bytes())
}

func TestMarshalNamespace(t *testing.T) {
	s := extractDocs(t, `<doc xmlns="urn:x" a="b"><item>1</item></doc>`)
	out, err := xsdgen.Marshal(s)
	require.NoError(t, err)
	doc := string(out)
	assert.Contains(t, doc, `targetNamespace="urn:x"`)
	assert.Contains(t, doc, `xmlns:tns="urn:x"`)
	assert.Contains(t, doc, `type="tns:ns1_doc"`)
	assert.Contains(t, doc, `<xs:attribute name="a" type="xs:string" use="required"></xs:attribute>`)
}

func TestMarshalForeignAttribute(t *testing.T) {
	s := extractDocs(t, `<r xml:lang="en"><c/></r>`, `<r xml:lang="de"><c/></r>`)
	out, err := xsdgen.Marshal(s)
	require.NoError(t, err)
	doc := string(out)
	// foreign declarations keep only their local name
	assert.Contains(t, doc, `<xs:attribute name="lang" `)
	assert.NotContains(t, doc, `name="xml:lang"`)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "_r-attr-_x", xsdgen.SimpleTypeName("_r-@_x"))
	assert.Equal(t, "_r-text", xsdgen.SimpleTypeName("_r-#text"))
	assert.Equal(t, "a_b", xsdgen.NCName("a+b"))
	assert.Equal(t, "_a", xsdgen.NCName("1a"))
}
