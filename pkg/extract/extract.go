// Package extract builds a schema from parsed sample documents.
//
// Every element position gets its own complex type, named by the path of
// element names from the root, for example "_root-_element1". A name step
// is the namespace prefix, an underscore, and the local name; elements
// without a namespace have an empty prefix, the others get "ns1", "ns2"
// and so on in order of appearance. The text of a type P has the simple
// type "P-#text" and its attribute a has "P-@_a".
package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"aqwari.net/xml/xmltree"
	"github.com/gnames/xsdinfer/pkg/datatype"
	"github.com/gnames/xsdinfer/pkg/schema"
)

// Extractor accumulates the documents of one batch into a schema.
type Extractor struct {
	s      *schema.Schema
	policy datatype.Policy

	// instances counts the elements of every complex type, attributes
	// counts them per attribute, across all documents.
	instances  map[string]int
	attributes map[string]map[schema.QName]int
}

// New creates an Extractor for a batch of documentCount documents.
func New(documentCount int, policy datatype.Policy) *Extractor {
	return &Extractor{
		s:          schema.New(documentCount),
		policy:     policy,
		instances:  make(map[string]int),
		attributes: make(map[string]map[schema.QName]int),
	}
}

// Add records the document with index doc.
func (x *Extractor) Add(doc int, root *xmltree.Element) error {
	if doc < 0 || doc >= x.s.Statistics.DocumentCount() {
		panic(fmt.Sprintf("extract: document index %d out of range [0, %d)",
			doc, x.s.Statistics.DocumentCount()))
	}
	typeName := x.step(root.Name)
	e := x.element(root.Name, typeName)
	e.ValidRoot = true
	return x.visit(doc, root, typeName)
}

// Finish computes attribute optionality and the builtin type and
// enumeration flag of every simple type, and returns the schema.
func (x *Extractor) Finish() *schema.Schema {
	for name, ct := range x.s.ComplexTypes {
		for i, a := range ct.Attributes {
			ct.Attributes[i].Optional = x.attributes[name][a.QName()] < x.instances[name]
		}
	}
	for _, st := range x.s.SimpleTypes {
		st.Builtin, st.Enum = x.policy.Infer(st.Values)
	}
	return x.s
}

func (x *Extractor) prefix(ns string) string {
	if ns == "" {
		return ""
	}
	if p, ok := x.s.Namespaces[ns]; ok {
		return p
	}
	p := "ns" + strconv.Itoa(len(x.s.Namespaces)+1)
	x.s.Namespaces[ns] = p
	return p
}

func (x *Extractor) step(n xml.Name) string {
	return x.prefix(n.Space) + "_" + n.Local
}

func (x *Extractor) element(n xml.Name, typeName string) *schema.Element {
	id := schema.ElementID{Namespace: n.Space, Name: n.Local, Type: typeName}
	if e, ok := x.s.Elements[id]; ok {
		return e
	}
	e := schema.NewElement(n.Space, n.Local, typeName)
	x.s.Elements[id] = e
	return e
}

func (x *Extractor) simpleType(name string, source schema.QName) *schema.SimpleType {
	st, ok := x.s.SimpleTypes[name]
	if !ok {
		st = schema.NewSimpleType(name)
		x.s.SimpleTypes[name] = st
	}
	st.Sources.Insert(source.String())
	return st
}

func (x *Extractor) complexType(name string, source schema.QName) *schema.ComplexType {
	ct, ok := x.s.ComplexTypes[name]
	if !ok {
		text := name + "-" + schema.TextLabel
		x.simpleType(text, source)
		ct = schema.NewComplexType(name, text)
		x.s.ComplexTypes[name] = ct
		x.attributes[name] = make(map[schema.QName]int)
	}
	ct.Sources.Insert(source.String())
	return ct
}

func (x *Extractor) visit(doc int, el *xmltree.Element, typeName string) error {
	source := schema.QName{Namespace: el.Name.Space, Name: el.Name.Local}
	ct := x.complexType(typeName, source)
	stats := x.s.Statistics.Entry(typeName)
	stats.RecordInstance(doc)
	x.instances[typeName]++

	for _, attr := range el.StartElement.Attr {
		if isNamespaceDecl(attr.Name) {
			continue
		}
		q := schema.QName{Namespace: attr.Name.Space, Name: attr.Name.Local}
		stName := typeName + "-@" + x.step(attr.Name)
		st := x.simpleType(stName, q)
		if _, ok := ct.Attribute(q); !ok {
			ct.SetAttribute(schema.Attribute{
				Namespace:  q.Namespace,
				Name:       q.Name,
				SimpleType: stName,
			})
		}
		x.attributes[typeName][q]++
		stats.RecordAttribute(doc, q)
		x.value(doc, stats, st, attr.Value, schema.AttributeLabel(q))
	}

	text, comments, err := content(el.Content)
	if err != nil {
		return ContentError(doc, source.String(), err)
	}
	x.value(doc, stats, x.s.SimpleTypes[ct.TextType], text, schema.TextLabel)
	for _, c := range comments {
		ct.Comments.Insert(c)
	}

	prev := schema.Initial
	seq := make([]schema.ElementID, 0, len(el.Children))
	for i := range el.Children {
		child := &el.Children[i]
		childType := typeName + "-" + x.step(child.Name)
		id := x.element(child.Name, childType).ID()
		ct.Automaton.AddEdge(prev, id)
		stats.RecordElement(doc, id)
		seq = append(seq, id)
		prev = id
		if err := x.visit(doc, child, childType); err != nil {
			return err
		}
	}
	ct.Automaton.AddEdge(prev, schema.Final)
	stats.RecordSubpattern(doc, seq)
	return nil
}

func (x *Extractor) value(
	doc int,
	stats *schema.ComplexTypeStats,
	st *schema.SimpleType,
	raw, node string,
) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	st.Whitespace = false
	st.AddValue(v)
	stats.RecordValue(doc, schema.ValueKey{Value: v, Node: node})
}

func isNamespaceDecl(n xml.Name) bool {
	return n.Space == "xmlns" || (n.Space == "" && n.Local == "xmlns")
}

// content returns the character data and the comments that are direct
// children of an element, given its raw inner XML.
func content(raw []byte) (string, []string, error) {
	if len(raw) == 0 {
		return "", nil, nil
	}
	d := xml.NewDecoder(bytes.NewReader(raw))
	d.Strict = false
	d.Entity = xml.HTMLEntity

	var text strings.Builder
	var comments []string
	depth := 0
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 {
				text.Write(t)
			}
		case xml.Comment:
			if c := strings.TrimSpace(string(t)); depth == 0 && c != "" {
				comments = append(comments, c)
			}
		}
	}
	return text.String(), comments, nil
}
