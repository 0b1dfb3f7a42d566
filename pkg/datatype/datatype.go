// Package datatype decides which XSD builtin type describes a set of
// observed literal values and whether the set should become an
// enumeration.
package datatype

import (
	"regexp"
	"strings"
	"time"
)

// Builtin is the qualified name of an XSD builtin simple type.
type Builtin string

const (
	Boolean  Builtin = "xs:boolean"
	Integer  Builtin = "xs:integer"
	Decimal  Builtin = "xs:decimal"
	Date     Builtin = "xs:date"
	DateTime Builtin = "xs:dateTime"
	String   Builtin = "xs:string"
)

// Policy maps a set of values to a builtin type and an enumeration flag.
type Policy interface {
	Infer(values []string) (Builtin, bool)
}

// Thresholds bound the number of distinct values that makes a simple type
// an enumeration.
type Thresholds struct {
	MinEnumValues int
	MaxEnumValues int
}

type policy struct {
	Thresholds
}

// NewPolicy creates the default Policy with the given enumeration
// thresholds.
func NewPolicy(t Thresholds) Policy {
	return &policy{Thresholds: t}
}

var (
	integerRe = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalRe = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
)

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// candidates are tried from the narrowest to the widest.
var candidates = []struct {
	builtin Builtin
	match   func(string) bool
}{
	{Boolean, func(s string) bool { return s == "true" || s == "false" }},
	{Integer, integerRe.MatchString},
	{Decimal, decimalRe.MatchString},
	{Date, func(s string) bool {
		_, err := time.Parse(time.DateOnly, s)
		return err == nil
	}},
	{DateTime, func(s string) bool {
		for _, l := range dateTimeLayouts {
			if _, err := time.Parse(l, s); err == nil {
				return true
			}
		}
		return false
	}},
}

// Infer returns the narrowest builtin matching every non-blank value.
// Sets with no non-blank values are xs:string and never enumerations.
func (p *policy) Infer(values []string) (Builtin, bool) {
	distinct := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			distinct[v] = struct{}{}
		}
	}
	if len(distinct) == 0 {
		return String, false
	}

	res := String
	for _, c := range candidates {
		if matchAll(distinct, c.match) {
			res = c.builtin
			break
		}
	}

	enum := res != Boolean &&
		len(distinct) >= p.MinEnumValues &&
		len(distinct) <= p.MaxEnumValues
	return res, enum
}

func matchAll(values map[string]struct{}, match func(string) bool) bool {
	for v := range values {
		if !match(v) {
			return false
		}
	}
	return true
}
