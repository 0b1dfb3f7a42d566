package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, OutputFile, ReportFile).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	strs := []struct {
		val string
		opt func(string) Option
	}{
		{c.Infer.TypeNameSeparator, OptInferTypeNameSeparator},
		{c.Infer.ChildrenPatternComparator, OptInferChildrenPatternComparator},
		{c.Infer.SameNameChildrenPatternComparator, OptInferSameNameChildrenPatternComparator},
		{c.Infer.AttributeListComparator, OptInferAttributeListComparator},
		{c.Infer.SameNameAttributeListComparator, OptInferSameNameAttributeListComparator},
		{c.Infer.EnumComparator, OptInferEnumComparator},
		{c.Infer.SameNameEnumComparator, OptInferSameNameEnumComparator},
		{c.Infer.ReportFormat, OptInferReportFormat},
	}
	for _, v := range strs {
		if v.val != "" {
			res = append(res, v.opt(v.val))
		}
	}
	i = c.Infer.MinEnumValues
	if i > 0 {
		res = append(res, OptInferMinEnumValues(i))
	}
	i = c.Infer.MaxEnumValues
	if i > 0 {
		res = append(res, OptInferMaxEnumValues(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Infer.ChildrenPatternComparator": {"equals": s, "node_based": s,
			"subsumed": s, "always": s, "never": s},
		"Infer.AttributeListComparator": {"same_attributes": s, "strict": s,
			"subset": s, "always": s, "never": s},
		"Infer.EnumComparator": {"equals": s, "same_builtin": s,
			"value_overlap": s, "always": s, "never": s},
		"Infer.ReportFormat": {"yaml": s, "json": s, "sqlite": s},
		"Log.Level":          {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":         {"json": s, "text": s, "tint": s},
		"Log.Destination":    {"file": s, "stderr": s, "stdout": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}

	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
