// Package config provides configuration management for xsdinfer.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Infer: type_name_separator, comparators, enum thresholds, report_format
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Infer.OutputFile, Infer.ReportFile (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use XSDINFER_ prefix with underscores for nesting:
//
//	XSDINFER_INFER_TYPE_NAME_SEPARATOR=_and_
//	XSDINFER_INFER_MAX_ENUM_VALUES=20
//	XSDINFER_LOG_LEVEL=info
//	XSDINFER_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete xsdinfer configuration.
type Config struct {
	// Infer contains settings of schema inference.
	Infer InferConfig `mapstructure:"infer" yaml:"infer"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers that parse sample
	// documents. Default value is set according to the number of available
	// threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// InferConfig contains the settings of type merging and output.
type InferConfig struct {
	// TypeNameSeparator joins the names of merged types.
	TypeNameSeparator string `mapstructure:"type_name_separator" yaml:"type_name_separator"`

	// ChildrenPatternComparator compares content models of any two complex
	// types. Valid values: "equals", "node_based", "subsumed", "always",
	// "never".
	ChildrenPatternComparator string `mapstructure:"children_pattern_comparator" yaml:"children_pattern_comparator"`

	// SameNameChildrenPatternComparator compares content models of complex
	// types of elements with the same name.
	SameNameChildrenPatternComparator string `mapstructure:"same_name_children_pattern_comparator" yaml:"same_name_children_pattern_comparator"`

	// AttributeListComparator compares attribute lists of any two complex
	// types. Valid values: "same_attributes", "strict", "subset", "always",
	// "never".
	AttributeListComparator string `mapstructure:"attribute_list_comparator" yaml:"attribute_list_comparator"`

	// SameNameAttributeListComparator compares attribute lists of complex
	// types of elements with the same name.
	SameNameAttributeListComparator string `mapstructure:"same_name_attribute_list_comparator" yaml:"same_name_attribute_list_comparator"`

	// EnumComparator compares any two simple types.
	// Valid values: "equals", "same_builtin", "value_overlap", "always",
	// "never".
	EnumComparator string `mapstructure:"enum_comparator" yaml:"enum_comparator"`

	// SameNameEnumComparator compares simple types that hold the text or
	// the same attribute of elements with the same name.
	SameNameEnumComparator string `mapstructure:"same_name_enum_comparator" yaml:"same_name_enum_comparator"`

	// MinEnumValues is the smallest number of distinct values that makes a
	// simple type an enumeration.
	MinEnumValues int `mapstructure:"min_enum_values" yaml:"min_enum_values"`

	// MaxEnumValues is the largest number of distinct values that makes a
	// simple type an enumeration.
	MaxEnumValues int `mapstructure:"max_enum_values" yaml:"max_enum_values"`

	// ReportFormat is the format of the statistics report.
	// Valid values: "yaml", "json", "sqlite".
	ReportFormat string `mapstructure:"report_format" yaml:"report_format"`

	// OutputFile is where the schema is written. Empty means STDOUT.
	OutputFile string `mapstructure:"-" yaml:"-"`

	// ReportFile is where the statistics report is written. Empty means no
	// report.
	ReportFile string `mapstructure:"-" yaml:"-"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Infer: InferConfig{
			TypeNameSeparator:                 "_and_",
			ChildrenPatternComparator:         "equals",
			SameNameChildrenPatternComparator: "node_based",
			AttributeListComparator:           "same_attributes",
			SameNameAttributeListComparator:   "subset",
			EnumComparator:                    "equals",
			SameNameEnumComparator:            "same_builtin",
			MinEnumValues:                     2,
			MaxEnumValues:                     20,
			ReportFormat:                      "yaml",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
