// Package xsdgen serializes an inferred schema as an XML Schema document.
package xsdgen

import (
	"encoding/xml"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/gnames/xsdinfer/pkg/regex"
	"github.com/gnames/xsdinfer/pkg/schema"
)

// ContentModel converts a content model to its canonical regular
// expression.
func ContentModel(a *schema.Automaton) regex.Expr[schema.ElementID] {
	res, _ := regex.DefaultPipeline[schema.ElementID]().Optimize(regex.Convert(a))
	return res
}

// Marshal renders s as an indented XSD document.
//
// Global elements are the valid roots. The target namespace is the
// namespace of the first root; local declarations use local names only.
// Elements and attributes from other namespaces, xml:lang for example,
// are written unqualified under their local name, so a validator reads
// them as members of the target namespace.
func Marshal(s *schema.Schema) ([]byte, error) {
	g := generator{s: s}
	out, err := xml.MarshalIndent(g.document(), "", "  ")
	if err != nil {
		return nil, MarshalError(err)
	}
	res := make([]byte, 0, len(xml.Header)+len(out)+1)
	res = append(res, xml.Header...)
	res = append(res, out...)
	return append(res, '\n'), nil
}

// Write renders s to w.
func Write(w io.Writer, s *schema.Schema) error {
	out, err := Marshal(s)
	if err != nil {
		return err
	}
	if _, err = w.Write(out); err != nil {
		return WriteError(err)
	}
	return nil
}

type generator struct {
	s   *schema.Schema
	tns string
}

func (g *generator) document() xsdSchema {
	res := xsdSchema{
		XS:                 xsNamespace,
		ElementFormDefault: "qualified",
	}
	roots := g.s.Roots()
	if len(roots) > 0 && roots[0].Namespace != "" {
		g.tns = roots[0].Namespace
		res.TNS = g.tns
		res.TargetNamespace = g.tns
	}
	for _, e := range roots {
		res.Elements = append(res.Elements, particle{
			XMLName: xsName("element"),
			Name:    e.Name,
			Type:    g.typeRef(e.Type),
		})
	}
	for _, name := range g.s.ComplexTypeNames() {
		res.ComplexTypes = append(res.ComplexTypes, g.complexType(g.s.ComplexTypes[name]))
	}
	for _, name := range g.s.SimpleTypeNames() {
		st := g.s.SimpleTypes[name]
		if !st.Enum {
			continue
		}
		res.SimpleTypes = append(res.SimpleTypes, g.simpleType(st))
	}
	return res
}

func xsName(local string) xml.Name {
	return xml.Name{Local: "xs:" + local}
}

func (g *generator) typeRef(name string) string {
	if g.tns == "" {
		return NCName(name)
	}
	return "tns:" + NCName(name)
}

func (g *generator) simpleRef(name string) string {
	st, ok := g.s.SimpleTypes[name]
	if !ok {
		panic(fmt.Sprintf("xsdgen: unknown simple type %q", name))
	}
	if st.Enum {
		return g.typeRef(SimpleTypeName(name))
	}
	return string(st.Builtin)
}

func (g *generator) complexType(ct *schema.ComplexType) complexType {
	res := complexType{Name: NCName(ct.Name)}
	if ct.Comments.Size() > 0 {
		docs := ct.Comments.Slice()
		slices.Sort(docs)
		res.Annotation = &annotation{Documentation: docs}
	}

	var attrs []attribute
	for _, a := range ct.Attributes {
		at := attribute{Name: a.Name, Type: g.simpleRef(a.SimpleType)}
		if !a.Optional {
			at.Use = "required"
		}
		attrs = append(attrs, at)
	}

	text := g.s.SimpleTypes[ct.TextType]
	hasText := text != nil && !text.Whitespace
	if ct.Automaton.IsEmpty() {
		if hasText {
			res.SimpleContent = &simpleContent{Extension: extension{
				Base:       g.simpleRef(ct.TextType),
				Attributes: attrs,
			}}
			return res
		}
		res.Attributes = attrs
		return res
	}

	p := g.particle(ContentModel(ct.Automaton))
	if p.XMLName.Local == "xs:element" {
		p = particle{XMLName: xsName("sequence"), Items: []particle{p}}
	}
	res.Particle = &p
	res.Mixed = hasText
	res.Attributes = attrs
	return res
}

func (g *generator) particle(e regex.Expr[schema.ElementID]) particle {
	switch t := e.(type) {
	case *regex.Element[schema.ElementID]:
		return particle{
			XMLName: xsName("element"),
			Name:    t.Symbol.Name,
			Type:    g.typeRef(t.Symbol.Type),
		}
	case *regex.Empty[schema.ElementID]:
		return particle{XMLName: xsName("sequence")}
	case *regex.Sequence[schema.ElementID]:
		return g.group("sequence", t.Children)
	case *regex.Choice[schema.ElementID]:
		return g.group("choice", t.Children)
	case *regex.All[schema.ElementID]:
		return g.group("all", t.Children)
	case *regex.Optional[schema.ElementID]:
		res := g.particle(t.Child)
		res.MinOccurs = "0"
		return res
	case *regex.Repeated[schema.ElementID]:
		res := g.particle(t.Child)
		res.MinOccurs = "0"
		res.MaxOccurs = "unbounded"
		return res
	case *regex.RepeatedAtLeastOnce[schema.ElementID]:
		res := g.particle(t.Child)
		res.MaxOccurs = "unbounded"
		return res
	}
	panic(fmt.Sprintf("xsdgen: unexpected expression %T", e))
}

func (g *generator) group(kind string, children []regex.Expr[schema.ElementID]) particle {
	res := particle{XMLName: xsName(kind)}
	for _, c := range children {
		res.Items = append(res.Items, g.particle(c))
	}
	return res
}

func (g *generator) simpleType(st *schema.SimpleType) simpleType {
	res := simpleType{
		Name:        NCName(SimpleTypeName(st.Name)),
		Restriction: restriction{Base: string(st.Builtin)},
	}
	for _, v := range st.Values {
		res.Restriction.Enumerations = append(res.Restriction.Enumerations, enumeration{Value: v})
	}
	return res
}

// SimpleTypeName keeps simple type names apart from complex type names
// once they are written as NCNames: "@" becomes "attr-" and "#" is
// dropped.
func SimpleTypeName(name string) string {
	name = strings.ReplaceAll(name, "@", "attr-")
	return strings.ReplaceAll(name, "#", "")
}

// NCName replaces the characters that are not allowed in an XML NCName
// with underscores.
func NCName(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case unicode.IsLetter(r), r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			r = '_'
		}
		b.WriteRune(r)
	}
	return b.String()
}
