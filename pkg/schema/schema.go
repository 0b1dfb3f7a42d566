// Package schema holds the inferred type system: elements, attributes,
// simple and complex types, and the per-type statistics gathered from the
// sample documents.
//
// Types live in name-keyed tables. Elements and attributes refer to types
// by name, so a merge replaces table entries and rewrites names instead of
// changing shared values in place.
package schema

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/gnames/xsdinfer/pkg/automaton"
	"github.com/gnames/xsdinfer/pkg/datatype"
	"github.com/hashicorp/go-set/v3"
)

// PseudoNamespace is reserved for the initial and final automaton nodes.
const PseudoNamespace = "urn:xsdinfer:pseudo"

// QName is a namespace-qualified name.
type QName struct {
	Namespace string
	Name      string
}

// String returns the name in "namespace:name" form, or just the name when
// there is no namespace.
func (q QName) String() string {
	if q.Namespace == "" {
		return q.Name
	}
	return q.Namespace + ":" + q.Name
}

// Compare orders qualified names by namespace, then by name.
func (q QName) Compare(o QName) int {
	return cmp.Or(
		cmp.Compare(q.Namespace, o.Namespace),
		cmp.Compare(q.Name, o.Name),
	)
}

// ElementID is the identity of an element declaration: its qualified name
// and the name of its complex type. It is also the node type of content
// model automata.
type ElementID struct {
	Namespace string
	Name      string
	Type      string
}

var (
	// Initial is the initial pseudo-node of every content model.
	Initial = ElementID{Namespace: PseudoNamespace, Name: "initial"}
	// Final is the final pseudo-node of every content model.
	Final = ElementID{Namespace: PseudoNamespace, Name: "final"}
)

// QName returns the qualified name of the element.
func (id ElementID) QName() QName {
	return QName{Namespace: id.Namespace, Name: id.Name}
}

// IsPseudo reports whether id is the initial or the final node.
func (id ElementID) IsPseudo() bool {
	return id.Namespace == PseudoNamespace
}

func (id ElementID) String() string {
	return id.QName().String()
}

func (id ElementID) compare(o ElementID) int {
	return cmp.Or(id.QName().Compare(o.QName()), cmp.Compare(id.Type, o.Type))
}

// Automaton is the content model of a complex type.
type Automaton = automaton.Extended[ElementID]

// NewAutomaton returns a content model with only the pseudo-nodes.
func NewAutomaton() *Automaton {
	return automaton.NewExtended(Initial, Final)
}

// Element is an element declaration.
type Element struct {
	Namespace string
	Name      string
	// Type is the name of the element's complex type.
	Type string
	// ValidRoot is true when the element was seen as a document root.
	ValidRoot bool
	// Sources keeps the "namespace:name" of the document nodes this
	// declaration was built from.
	Sources *set.Set[string]
}

// NewElement creates an element declaration that has its own qualified
// name as its only source.
func NewElement(namespace, name, typeName string) *Element {
	res := &Element{
		Namespace: namespace,
		Name:      name,
		Type:      typeName,
		Sources:   set.New[string](1),
	}
	res.Sources.Insert(res.QName().String())
	return res
}

// ID returns the identity of the element.
func (e *Element) ID() ElementID {
	return ElementID{Namespace: e.Namespace, Name: e.Name, Type: e.Type}
}

// QName returns the qualified name of the element.
func (e *Element) QName() QName {
	return QName{Namespace: e.Namespace, Name: e.Name}
}

// Equal compares elements by namespace, name and type.
func (e *Element) Equal(o *Element) bool {
	return o != nil && e.ID() == o.ID()
}

func (e *Element) withType(typeName string) *Element {
	res := *e
	res.Type = typeName
	res.Sources = e.Sources.Copy()
	return &res
}

func mergeElements(a, b *Element) *Element {
	res := a.withType(a.Type)
	res.ValidRoot = a.ValidRoot || b.ValidRoot
	res.Sources.InsertSet(b.Sources)
	return res
}

// Attribute is an attribute declaration of a complex type.
type Attribute struct {
	Namespace string
	Name      string
	Optional  bool
	// SimpleType is the name of the attribute's simple type.
	SimpleType string
}

// QName returns the qualified name of the attribute.
func (a Attribute) QName() QName {
	return QName{Namespace: a.Namespace, Name: a.Name}
}

// Label identifies the attribute as a value holder in statistics.
func (a Attribute) Label() string {
	return AttributeLabel(a.QName())
}

// AttributeLabel returns the statistics label of an attribute.
func AttributeLabel(q QName) string {
	return "@" + q.String()
}

// TextLabel is the statistics label of the text content of an element.
const TextLabel = "#text"

// SimpleType is an inferred simple type.
type SimpleType struct {
	Name    string
	Builtin datatype.Builtin
	// Values are the distinct literal values in the order they were first
	// seen.
	Values []string
	Enum   bool
	// Whitespace is true while every observed value is blank.
	Whitespace bool
	Sources    *set.Set[string]

	seen map[string]struct{}
}

// NewSimpleType creates a simple type without values.
func NewSimpleType(name string) *SimpleType {
	return &SimpleType{
		Name:       name,
		Builtin:    datatype.String,
		Whitespace: true,
		Sources:    set.New[string](1),
	}
}

// AddValue appends v to Values unless it is already there.
func (st *SimpleType) AddValue(v string) {
	if st.HasValue(v) {
		return
	}
	st.seen[v] = struct{}{}
	st.Values = append(st.Values, v)
}

// HasValue reports whether v was observed.
func (st *SimpleType) HasValue(v string) bool {
	if st.seen == nil || len(st.seen) != len(st.Values) {
		st.seen = make(map[string]struct{}, len(st.Values))
		for _, s := range st.Values {
			st.seen[s] = struct{}{}
		}
	}
	_, ok := st.seen[v]
	return ok
}

// ComplexType is an inferred complex type.
type ComplexType struct {
	Name string
	// Automaton is the content model over child element declarations.
	Automaton *Automaton
	// TextType is the name of the simple type of the text content.
	TextType string
	// Attributes are unique by qualified name.
	Attributes []Attribute
	Comments   *set.Set[string]
	Sources    *set.Set[string]
}

// NewComplexType creates a complex type with an empty content model.
func NewComplexType(name, textType string) *ComplexType {
	return &ComplexType{
		Name:      name,
		Automaton: NewAutomaton(),
		TextType:  textType,
		Comments:  set.New[string](0),
		Sources:   set.New[string](1),
	}
}

// Attribute finds an attribute by its qualified name.
func (ct *ComplexType) Attribute(q QName) (Attribute, bool) {
	i := ct.attributeIndex(q)
	if i < 0 {
		return Attribute{}, false
	}
	return ct.Attributes[i], true
}

func (ct *ComplexType) attributeIndex(q QName) int {
	return slices.IndexFunc(ct.Attributes, func(a Attribute) bool {
		return a.QName() == q
	})
}

// SetAttribute adds a or replaces the attribute with the same qualified
// name.
func (ct *ComplexType) SetAttribute(a Attribute) {
	if i := ct.attributeIndex(a.QName()); i >= 0 {
		ct.Attributes[i] = a
		return
	}
	ct.Attributes = append(ct.Attributes, a)
}

func (ct *ComplexType) clone() *ComplexType {
	res := *ct
	res.Attributes = slices.Clone(ct.Attributes)
	return &res
}

// Schema is the whole inferred type system.
type Schema struct {
	// Namespaces maps namespace URIs to the prefixes used in type names.
	Namespaces   map[string]string
	Elements     map[ElementID]*Element
	ComplexTypes map[string]*ComplexType
	SimpleTypes  map[string]*SimpleType
	Statistics   *Statistics
}

// New creates an empty schema for a batch of documentCount documents.
func New(documentCount int) *Schema {
	return &Schema{
		Namespaces:   make(map[string]string),
		Elements:     make(map[ElementID]*Element),
		ComplexTypes: make(map[string]*ComplexType),
		SimpleTypes:  make(map[string]*SimpleType),
		Statistics:   NewStatistics(documentCount),
	}
}

// ComplexTypeNames returns the names of all complex types, sorted.
func (s *Schema) ComplexTypeNames() []string {
	return slices.Sorted(maps.Keys(s.ComplexTypes))
}

// SimpleTypeNames returns the names of all simple types, sorted.
func (s *Schema) SimpleTypeNames() []string {
	return slices.Sorted(maps.Keys(s.SimpleTypes))
}

// SortedElements returns all element declarations ordered by qualified
// name and type.
func (s *Schema) SortedElements() []*Element {
	res := slices.Collect(maps.Values(s.Elements))
	slices.SortFunc(res, func(a, b *Element) int {
		return a.ID().compare(b.ID())
	})
	return res
}

// Roots returns the elements that were seen as document roots.
func (s *Schema) Roots() []*Element {
	var res []*Element
	for _, e := range s.SortedElements() {
		if e.ValidRoot {
			res = append(res, e)
		}
	}
	return res
}

// ElementsOfType returns the elements whose type is typeName.
func (s *Schema) ElementsOfType(typeName string) []*Element {
	var res []*Element
	for _, e := range s.SortedElements() {
		if e.Type == typeName {
			res = append(res, e)
		}
	}
	return res
}

// RenameComplexTypes points every reference to one of olds at name. It
// rewrites element identities, content model nodes and statistics keys.
// Elements that end up with the same identity are fused.
func (s *Schema) RenameComplexTypes(olds []string, name string) {
	old := set.From(olds)
	relabel := func(id ElementID) ElementID {
		if old.Contains(id.Type) {
			id.Type = name
		}
		return id
	}

	for k, ct := range s.ComplexTypes {
		if !slices.ContainsFunc(ct.Automaton.ElementNodes(), func(id ElementID) bool {
			return old.Contains(id.Type)
		}) {
			continue
		}
		res := ct.clone()
		res.Automaton = ct.Automaton.Relabel(relabel)
		s.ComplexTypes[k] = res
	}

	elements := make(map[ElementID]*Element, len(s.Elements))
	for _, e := range s.SortedElements() {
		if old.Contains(e.Type) {
			e = e.withType(name)
		}
		if prev, ok := elements[e.ID()]; ok {
			e = mergeElements(prev, e)
		}
		elements[e.ID()] = e
	}
	s.Elements = elements

	if s.Statistics != nil {
		s.Statistics.relabel(relabel)
	}
}

// RenameSimpleTypes points every text and attribute reference to one of
// olds at name.
func (s *Schema) RenameSimpleTypes(olds []string, name string) {
	old := set.From(olds)
	for k, ct := range s.ComplexTypes {
		var res *ComplexType
		if old.Contains(ct.TextType) {
			res = ct.clone()
			res.TextType = name
		}
		for i, a := range ct.Attributes {
			if !old.Contains(a.SimpleType) {
				continue
			}
			if res == nil {
				res = ct.clone()
			}
			res.Attributes[i].SimpleType = name
		}
		if res != nil {
			s.ComplexTypes[k] = res
		}
	}
}

// Validate checks that every name reference resolves: element types,
// content model nodes, text types and attribute types.
func (s *Schema) Validate() error {
	var errs []error
	for _, e := range s.SortedElements() {
		if _, ok := s.ComplexTypes[e.Type]; !ok {
			errs = append(errs, fmt.Errorf("element %s refers to missing complex type %q", e.QName(), e.Type))
		}
	}
	for _, name := range s.ComplexTypeNames() {
		ct := s.ComplexTypes[name]
		if ct.Name != name {
			errs = append(errs, fmt.Errorf("complex type %q is stored under %q", ct.Name, name))
		}
		for _, id := range ct.Automaton.ElementNodes() {
			if _, ok := s.Elements[id]; !ok {
				errs = append(errs, fmt.Errorf("complex type %q has undeclared child %s of type %q", name, id, id.Type))
			}
		}
		if _, ok := s.SimpleTypes[ct.TextType]; !ok {
			errs = append(errs, fmt.Errorf("complex type %q refers to missing text type %q", name, ct.TextType))
		}
		seen := make(map[QName]bool)
		for _, a := range ct.Attributes {
			if seen[a.QName()] {
				errs = append(errs, fmt.Errorf("complex type %q declares attribute %s twice", name, a.QName()))
			}
			seen[a.QName()] = true
			if _, ok := s.SimpleTypes[a.SimpleType]; !ok {
				errs = append(errs, fmt.Errorf("attribute %s of %q refers to missing simple type %q", a.QName(), name, a.SimpleType))
			}
		}
	}
	return errors.Join(errs...)
}
