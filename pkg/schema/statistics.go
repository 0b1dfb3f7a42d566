package schema

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ValueKey identifies a literal value held by a value node: the text
// content or one attribute.
type ValueKey struct {
	Value string
	// Node is TextLabel or the AttributeLabel of an attribute.
	Node string
}

// Subpattern counts how often a sequence of child elements was seen as
// the complete child list of an instance.
type Subpattern struct {
	Sequence []ElementID
	Counts   []int
}

// ComplexTypeStats are per-document occurrence counters of one complex
// type. Every vector is indexed by document.
type ComplexTypeStats struct {
	// Instances counts the elements of this type per document.
	Instances   []int
	Elements    map[ElementID][]int
	Attributes  map[QName][]int
	Values      map[ValueKey][]int
	Subpatterns map[string]*Subpattern
}

// NewComplexTypeStats creates empty counters for documentCount documents.
func NewComplexTypeStats(documentCount int) *ComplexTypeStats {
	return &ComplexTypeStats{
		Instances:   make([]int, documentCount),
		Elements:    make(map[ElementID][]int),
		Attributes:  make(map[QName][]int),
		Values:      make(map[ValueKey][]int),
		Subpatterns: make(map[string]*Subpattern),
	}
}

// DocumentCount is the length of every vector of the entry.
func (c *ComplexTypeStats) DocumentCount() int {
	return len(c.Instances)
}

func (c *ComplexTypeStats) check(doc int) {
	if doc < 0 || doc >= c.DocumentCount() {
		panic(fmt.Sprintf("document index %d out of range [0, %d)", doc, c.DocumentCount()))
	}
}

func (c *ComplexTypeStats) vector() []int {
	return make([]int, c.DocumentCount())
}

// RecordInstance counts one instance of the type in document doc.
func (c *ComplexTypeStats) RecordInstance(doc int) {
	c.check(doc)
	c.Instances[doc]++
}

// RecordElement counts one child element in document doc.
func (c *ComplexTypeStats) RecordElement(doc int, id ElementID) {
	c.check(doc)
	v, ok := c.Elements[id]
	if !ok {
		v = c.vector()
		c.Elements[id] = v
	}
	v[doc]++
}

// RecordAttribute counts one attribute occurrence in document doc.
func (c *ComplexTypeStats) RecordAttribute(doc int, q QName) {
	c.check(doc)
	v, ok := c.Attributes[q]
	if !ok {
		v = c.vector()
		c.Attributes[q] = v
	}
	v[doc]++
}

// RecordValue counts one literal value of a value node in document doc.
func (c *ComplexTypeStats) RecordValue(doc int, key ValueKey) {
	c.check(doc)
	v, ok := c.Values[key]
	if !ok {
		v = c.vector()
		c.Values[key] = v
	}
	v[doc]++
}

// RecordSubpattern counts one child sequence in document doc.
func (c *ComplexTypeStats) RecordSubpattern(doc int, seq []ElementID) {
	c.check(doc)
	key := subpatternKey(seq)
	sp, ok := c.Subpatterns[key]
	if !ok {
		sp = &Subpattern{Sequence: slices.Clone(seq), Counts: c.vector()}
		c.Subpatterns[key] = sp
	}
	sp.Counts[doc]++
}

// Total sums a per-document vector.
func Total(v []int) int {
	var res int
	for _, n := range v {
		res += n
	}
	return res
}

// DocumentsWith counts the documents where v is positive.
func DocumentsWith(v []int) int {
	var res int
	for _, n := range v {
		if n > 0 {
			res++
		}
	}
	return res
}

// MergeComplexTypeStats sums two entries. The result has the length of
// the longer one and keeps every counter at its document index.
func MergeComplexTypeStats(a, b *ComplexTypeStats) *ComplexTypeStats {
	n := max(a.DocumentCount(), b.DocumentCount())
	res := NewComplexTypeStats(n)
	res.Instances = sumVectors(n, a.Instances, b.Instances)
	res.Elements = mergeVectors(n, a.Elements, b.Elements)
	res.Attributes = mergeVectors(n, a.Attributes, b.Attributes)
	res.Values = mergeVectors(n, a.Values, b.Values)
	for _, src := range []*ComplexTypeStats{a, b} {
		for k, sp := range src.Subpatterns {
			if prev, ok := res.Subpatterns[k]; ok {
				prev.Counts = sumVectors(n, prev.Counts, sp.Counts)
				continue
			}
			res.Subpatterns[k] = &Subpattern{
				Sequence: slices.Clone(sp.Sequence),
				Counts:   sumVectors(n, sp.Counts),
			}
		}
	}
	return res
}

func sumVectors(n int, vs ...[]int) []int {
	res := make([]int, n)
	for _, v := range vs {
		for i, c := range v {
			res[i] += c
		}
	}
	return res
}

func mergeVectors[K comparable](n int, a, b map[K][]int) map[K][]int {
	res := make(map[K][]int, len(a)+len(b))
	for _, m := range []map[K][]int{a, b} {
		for k, v := range m {
			res[k] = sumVectors(n, res[k], v)
		}
	}
	return res
}

func (c *ComplexTypeStats) relabel(fn func(ElementID) ElementID) {
	n := c.DocumentCount()
	elements := make(map[ElementID][]int, len(c.Elements))
	for id, v := range c.Elements {
		id = fn(id)
		elements[id] = sumVectors(n, elements[id], v)
	}
	c.Elements = elements

	subpatterns := make(map[string]*Subpattern, len(c.Subpatterns))
	for _, sp := range c.Subpatterns {
		seq := make([]ElementID, len(sp.Sequence))
		for i, id := range sp.Sequence {
			seq[i] = fn(id)
		}
		key := subpatternKey(seq)
		if prev, ok := subpatterns[key]; ok {
			prev.Counts = sumVectors(n, prev.Counts, sp.Counts)
			continue
		}
		subpatterns[key] = &Subpattern{Sequence: seq, Counts: sp.Counts}
	}
	c.Subpatterns = subpatterns
}

func subpatternKey(seq []ElementID) string {
	parts := make([]string, len(seq))
	for i, id := range seq {
		parts[i] = id.Namespace + "\x00" + id.Name + "\x00" + id.Type
	}
	return strings.Join(parts, "\x01")
}

// Statistics keeps one entry per complex type name.
type Statistics struct {
	documentCount int
	entries       map[string]*ComplexTypeStats
}

// NewStatistics creates statistics for a batch of documentCount documents.
func NewStatistics(documentCount int) *Statistics {
	return &Statistics{
		documentCount: documentCount,
		entries:       make(map[string]*ComplexTypeStats),
	}
}

// DocumentCount is the number of documents in the batch.
func (s *Statistics) DocumentCount() int {
	return s.documentCount
}

// Entry returns the counters of a complex type, creating them on first
// use.
func (s *Statistics) Entry(typeName string) *ComplexTypeStats {
	res, ok := s.entries[typeName]
	if !ok {
		res = NewComplexTypeStats(s.documentCount)
		s.entries[typeName] = res
	}
	return res
}

// Lookup returns the counters of a complex type if they exist.
func (s *Statistics) Lookup(typeName string) (*ComplexTypeStats, bool) {
	res, ok := s.entries[typeName]
	return res, ok
}

// Names returns the complex type names that have counters, sorted.
func (s *Statistics) Names() []string {
	return slices.Sorted(maps.Keys(s.entries))
}

// Merge replaces the entries of a and b with their sum stored under
// merged.
func (s *Statistics) Merge(a, b, merged string) {
	ea := s.Entry(a)
	eb := s.Entry(b)
	delete(s.entries, a)
	delete(s.entries, b)
	s.entries[merged] = MergeComplexTypeStats(ea, eb)
}

func (s *Statistics) relabel(fn func(ElementID) ElementID) {
	for _, e := range s.entries {
		e.relabel(fn)
	}
}
