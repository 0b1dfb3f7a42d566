package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptInferTypeNameSeparator sets the string that joins merged type names.
func OptInferTypeNameSeparator(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Type Name Separator", s) {
			c.Infer.TypeNameSeparator = s
		}
	}
}

// OptInferChildrenPatternComparator sets the general content model
// comparator.
func OptInferChildrenPatternComparator(s string) Option {
	s = normalize(s)
	return func(c *Config) {
		if isValidEnum("Infer.ChildrenPatternComparator", s) {
			c.Infer.ChildrenPatternComparator = s
		}
	}
}

// OptInferSameNameChildrenPatternComparator sets the content model
// comparator for elements with the same name.
func OptInferSameNameChildrenPatternComparator(s string) Option {
	s = normalize(s)
	return func(c *Config) {
		if isValidEnum("Infer.ChildrenPatternComparator", s) {
			c.Infer.SameNameChildrenPatternComparator = s
		}
	}
}

// OptInferAttributeListComparator sets the general attribute list
// comparator.
func OptInferAttributeListComparator(s string) Option {
	s = normalize(s)
	return func(c *Config) {
		if isValidEnum("Infer.AttributeListComparator", s) {
			c.Infer.AttributeListComparator = s
		}
	}
}

// OptInferSameNameAttributeListComparator sets the attribute list
// comparator for elements with the same name.
func OptInferSameNameAttributeListComparator(s string) Option {
	s = normalize(s)
	return func(c *Config) {
		if isValidEnum("Infer.AttributeListComparator", s) {
			c.Infer.SameNameAttributeListComparator = s
		}
	}
}

// OptInferEnumComparator sets the general simple type comparator.
func OptInferEnumComparator(s string) Option {
	s = normalize(s)
	return func(c *Config) {
		if isValidEnum("Infer.EnumComparator", s) {
			c.Infer.EnumComparator = s
		}
	}
}

// OptInferSameNameEnumComparator sets the simple type comparator for
// values at the same position.
func OptInferSameNameEnumComparator(s string) Option {
	s = normalize(s)
	return func(c *Config) {
		if isValidEnum("Infer.EnumComparator", s) {
			c.Infer.SameNameEnumComparator = s
		}
	}
}

// OptInferMinEnumValues sets the smallest number of distinct values of an
// enumeration. If it exceeds MaxEnumValues no enumerations are inferred.
func OptInferMinEnumValues(i int) Option {
	return func(c *Config) {
		if isValidInt("Min Enum Values", i) {
			c.Infer.MinEnumValues = i
		}
	}
}

// OptInferMaxEnumValues sets the largest number of distinct values of an
// enumeration.
func OptInferMaxEnumValues(i int) Option {
	return func(c *Config) {
		if isValidInt("Max Enum Values", i) {
			c.Infer.MaxEnumValues = i
		}
	}
}

// OptInferReportFormat sets the format of the statistics report.
// Valid values: "yaml", "json", "sqlite".
func OptInferReportFormat(s string) Option {
	s = normalize(s)
	return func(c *Config) {
		if isValidEnum("Infer.ReportFormat", s) {
			c.Infer.ReportFormat = s
		}
	}
}

// OptInferOutputFile sets the path of the generated schema.
// Runtime-only field - not in ToOptions().
func OptInferOutputFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output File", s) {
			c.Infer.OutputFile = s
		}
	}
}

// OptInferReportFile sets the path of the statistics report.
// Runtime-only field - not in ToOptions().
func OptInferReportFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Report File", s) {
			c.Infer.ReportFile = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = normalize(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = normalize(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = normalize(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parsing.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
