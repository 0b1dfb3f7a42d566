// Package ioreport builds the occurrence statistics of an inferred schema
// and writes them as YAML, JSON or a SQLite database.
package ioreport

import (
	"cmp"
	"slices"

	"github.com/gnames/gnuuid"
	"github.com/gnames/xsdinfer/pkg/schema"
	"github.com/gnames/xsdinfer/pkg/xsdgen"
)

// TopValues is the number of most frequent values kept per complex type.
const TopValues = 10

// Report holds the statistics of one inference run.
type Report struct {
	RunID        string      `json:"runId"        yaml:"run_id"`
	Documents    int         `json:"documents"    yaml:"documents"`
	ComplexTypes []TypeStats `json:"complexTypes" yaml:"complex_types"`
}

// TypeStats are the statistics of one complex type.
type TypeStats struct {
	// ID is a UUIDv5 generated from the type name.
	ID           string `json:"id"           yaml:"id"`
	Name         string `json:"name"         yaml:"name"`
	ContentModel string `json:"contentModel" yaml:"content_model"`
	// Documents is the number of documents where the type occurs.
	Documents  int               `json:"documents"  yaml:"documents"`
	Instances  int               `json:"instances"  yaml:"instances"`
	Elements   []OccurrenceStats `json:"elements"   yaml:"elements,omitempty"`
	Attributes []OccurrenceStats `json:"attributes" yaml:"attributes,omitempty"`
	Values     []ValueStats      `json:"values"     yaml:"values,omitempty"`
}

// OccurrenceStats describe how often a child element or an attribute
// occurs in the documents that contain its parent type.
type OccurrenceStats struct {
	Name      string  `json:"name"      yaml:"name"`
	Documents int     `json:"documents" yaml:"documents"`
	Total     int     `json:"total"     yaml:"total"`
	Min       int     `json:"min"       yaml:"min"`
	Max       int     `json:"max"       yaml:"max"`
	Avg       float64 `json:"avg"       yaml:"avg"`
}

// ValueStats is the number of occurrences of a literal value.
type ValueStats struct {
	// Node is "#text" or the label of an attribute.
	Node      string `json:"node"      yaml:"node"`
	Value     string `json:"value"     yaml:"value"`
	Count     int    `json:"count"     yaml:"count"`
	Documents int    `json:"documents" yaml:"documents"`
}

// Build computes the report of s. Types are sorted by name.
func Build(runID string, s *schema.Schema) *Report {
	res := &Report{
		RunID:     runID,
		Documents: s.Statistics.DocumentCount(),
	}
	for _, name := range s.ComplexTypeNames() {
		ct := s.ComplexTypes[name]
		ts := TypeStats{
			ID:           gnuuid.New(name).String(),
			Name:         name,
			ContentModel: xsdgen.ContentModel(ct.Automaton).String(),
		}
		if st, ok := s.Statistics.Lookup(name); ok {
			fillStats(&ts, st)
		}
		res.ComplexTypes = append(res.ComplexTypes, ts)
	}
	return res
}

func fillStats(ts *TypeStats, st *schema.ComplexTypeStats) {
	ts.Documents = schema.DocumentsWith(st.Instances)
	ts.Instances = schema.Total(st.Instances)

	for id, v := range st.Elements {
		ts.Elements = append(ts.Elements,
			occurrence(id.String(), st.Instances, v))
	}
	for q, v := range st.Attributes {
		ts.Attributes = append(ts.Attributes,
			occurrence(schema.AttributeLabel(q), st.Instances, v))
	}
	byName := func(a, b OccurrenceStats) int {
		return cmp.Compare(a.Name, b.Name)
	}
	slices.SortFunc(ts.Elements, byName)
	slices.SortFunc(ts.Attributes, byName)

	for k, v := range st.Values {
		ts.Values = append(ts.Values, ValueStats{
			Node:      k.Node,
			Value:     k.Value,
			Count:     schema.Total(v),
			Documents: schema.DocumentsWith(v),
		})
	}
	slices.SortFunc(ts.Values, func(a, b ValueStats) int {
		return cmp.Or(
			cmp.Compare(b.Count, a.Count),
			cmp.Compare(a.Node, b.Node),
			cmp.Compare(a.Value, b.Value),
		)
	})
	if len(ts.Values) > TopValues {
		ts.Values = ts.Values[:TopValues]
	}
}

// occurrence aggregates v over the documents where the parent type has
// instances.
func occurrence(name string, instances, v []int) OccurrenceStats {
	res := OccurrenceStats{Name: name}
	var docs int
	for i, n := range instances {
		if n == 0 {
			continue
		}
		c := v[i]
		if docs == 0 || c < res.Min {
			res.Min = c
		}
		res.Max = max(res.Max, c)
		res.Total += c
		if c > 0 {
			res.Documents++
		}
		docs++
	}
	if docs > 0 {
		res.Avg = float64(res.Total) / float64(docs)
	}
	return res
}
