package merge

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/gnames/xsdinfer/pkg/schema"
)

type pair struct {
	a, b string
}

// session applies one merge and drains the merges it forces. Names of
// merged-away types are resolved through the alias maps, so queued pairs
// stay valid after later merges.
type session struct {
	*Merger
	s       *schema.Schema
	summary *Summary

	complexAlias map[string]string
	simpleAlias  map[string]string
	complexQueue []pair
	simpleQueue  []pair
}

func (m *Merger) session(s *schema.Schema, summary *Summary) *session {
	return &session{
		Merger:       m,
		s:            s,
		summary:      summary,
		complexAlias: make(map[string]string),
		simpleAlias:  make(map[string]string),
	}
}

func resolve(alias map[string]string, name string) string {
	for {
		next, ok := alias[name]
		if !ok {
			return name
		}
		name = next
	}
}

func (ss *session) resolveComplex(name string) string {
	return resolve(ss.complexAlias, name)
}

func (ss *session) resolveSimple(name string) string {
	return resolve(ss.simpleAlias, name)
}

// mergedName joins a and b, adding a numeric suffix if the result is
// already taken.
func (ss *session) mergedName(a, b string, taken func(string) bool) string {
	res := a + ss.separator + b
	if !taken(res) {
		return res
	}
	for i := 2; ; i++ {
		if n := res + "_" + strconv.Itoa(i); !taken(n) {
			return n
		}
	}
}

func (ss *session) mergeComplex(a, b string, forced bool) {
	ss.applyComplex(a, b, forced)
	ss.drain()
}

func (ss *session) mergeSimple(a, b string, forced bool) {
	ss.applySimple(a, b, forced)
	ss.drain()
}

func (ss *session) drain() {
	for len(ss.complexQueue) > 0 || len(ss.simpleQueue) > 0 {
		if len(ss.complexQueue) > 0 {
			p := ss.complexQueue[0]
			ss.complexQueue = ss.complexQueue[1:]
			a, b := ss.resolveComplex(p.a), ss.resolveComplex(p.b)
			if a != b {
				ss.applyComplex(a, b, true)
			}
			continue
		}
		p := ss.simpleQueue[0]
		ss.simpleQueue = ss.simpleQueue[1:]
		a, b := ss.resolveSimple(p.a), ss.resolveSimple(p.b)
		if a != b {
			ss.applySimple(a, b, true)
		}
	}
}

func (ss *session) applyComplex(a, b string, forced bool) {
	if a == b {
		panic(fmt.Sprintf("merge: complex type %q merged with itself", a))
	}
	ca, ok := ss.s.ComplexTypes[a]
	if !ok {
		panic(fmt.Sprintf("merge: unknown complex type %q", a))
	}
	cb, ok := ss.s.ComplexTypes[b]
	if !ok {
		panic(fmt.Sprintf("merge: unknown complex type %q", b))
	}

	name := ss.mergedName(a, b, func(n string) bool {
		_, ok := ss.s.ComplexTypes[n]
		return ok
	})
	res := &schema.ComplexType{
		Name:       name,
		Automaton:  ca.Automaton.Merge(cb.Automaton, nil),
		TextType:   ca.TextType,
		Attributes: ss.mergeAttributes(ca.Attributes, cb.Attributes),
		Comments:   ca.Comments.Copy(),
		Sources:    ca.Sources.Copy(),
	}
	res.Comments.InsertSet(cb.Comments)
	res.Sources.InsertSet(cb.Sources)
	if ca.TextType != cb.TextType {
		ss.simpleQueue = append(ss.simpleQueue, pair{ca.TextType, cb.TextType})
	}

	delete(ss.s.ComplexTypes, a)
	delete(ss.s.ComplexTypes, b)
	ss.s.ComplexTypes[name] = res
	ss.s.Statistics.Merge(a, b, name)
	ss.s.RenameComplexTypes([]string{a, b}, name)
	ss.complexAlias[a] = name
	ss.complexAlias[b] = name

	if forced {
		ss.summary.ForcedComplexMerges++
	} else {
		ss.summary.ComplexMerges++
	}
	slog.Debug("Merged complex types", "a", a, "b", b, "forced", forced)

	ss.complexQueue = append(ss.complexQueue, conflicts(ss.s.ComplexTypes[name].Automaton)...)
}

// mergeAttributes unions two attribute lists. An attribute is optional
// unless both sides have it as required. Attributes on both sides keep the
// simple type of a, and the simple type of b is queued for a merge.
func (ss *session) mergeAttributes(a, b []schema.Attribute) []schema.Attribute {
	res := make([]schema.Attribute, 0, len(a)+len(b))
	inB := make(map[schema.QName]schema.Attribute, len(b))
	for _, at := range b {
		inB[at.QName()] = at
	}
	inA := make(map[schema.QName]bool, len(a))
	for _, at := range a {
		inA[at.QName()] = true
		bt, ok := inB[at.QName()]
		if !ok {
			at.Optional = true
			res = append(res, at)
			continue
		}
		at.Optional = at.Optional || bt.Optional
		if at.SimpleType != bt.SimpleType {
			ss.simpleQueue = append(ss.simpleQueue, pair{at.SimpleType, bt.SimpleType})
		}
		res = append(res, at)
	}
	for _, bt := range b {
		if !inA[bt.QName()] {
			bt.Optional = true
			res = append(res, bt)
		}
	}
	return res
}

// conflicts pairs up the types of children that share a qualified name.
func conflicts(a *schema.Automaton) []pair {
	first := make(map[schema.QName]string)
	var res []pair
	for _, id := range a.ElementNodes() {
		t, ok := first[id.QName()]
		if !ok {
			first[id.QName()] = id.Type
			continue
		}
		if t != id.Type {
			res = append(res, pair{t, id.Type})
		}
	}
	return res
}

func (ss *session) applySimple(a, b string, forced bool) {
	if a == b {
		panic(fmt.Sprintf("merge: simple type %q merged with itself", a))
	}
	sa, ok := ss.s.SimpleTypes[a]
	if !ok {
		panic(fmt.Sprintf("merge: unknown simple type %q", a))
	}
	sb, ok := ss.s.SimpleTypes[b]
	if !ok {
		panic(fmt.Sprintf("merge: unknown simple type %q", b))
	}

	name := ss.mergedName(a, b, func(n string) bool {
		_, ok := ss.s.SimpleTypes[n]
		return ok
	})
	res := schema.NewSimpleType(name)
	for _, v := range slices.Concat(sa.Values, sb.Values) {
		res.AddValue(v)
	}
	res.Whitespace = sa.Whitespace && sb.Whitespace
	res.Builtin, res.Enum = ss.policy.Infer(res.Values)
	res.Sources = sa.Sources.Copy()
	res.Sources.InsertSet(sb.Sources)

	delete(ss.s.SimpleTypes, a)
	delete(ss.s.SimpleTypes, b)
	ss.s.SimpleTypes[name] = res
	ss.s.RenameSimpleTypes([]string{a, b}, name)
	ss.simpleAlias[a] = name
	ss.simpleAlias[b] = name

	if forced {
		ss.summary.ForcedSimpleMerges++
	} else {
		ss.summary.SimpleMerges++
	}
	slog.Debug("Merged simple types", "a", a, "b", b, "forced", forced)
}

// reconcileAll merges the types of same-name children in every content
// model until none are left.
func (ss *session) reconcileAll() {
	for {
		for _, name := range ss.s.ComplexTypeNames() {
			ss.complexQueue = append(ss.complexQueue, conflicts(ss.s.ComplexTypes[name].Automaton)...)
		}
		if len(ss.complexQueue) == 0 {
			return
		}
		ss.drain()
	}
}
