// Package inference defines the end-to-end schema inference run.
package inference

import (
	"context"

	"github.com/gnames/xsdinfer/pkg/merge"
	"github.com/gnames/xsdinfer/pkg/schema"
)

// Inferrer turns a batch of sample documents into an XML Schema.
//
// A run reads every input file, extracts per-position types, merges
// similar types, and writes the schema and, if requested, a statistics
// report. The configuration is provided during construction.
type Inferrer interface {
	// Infer runs inference over the given files and directories.
	// Directories are walked for *.xml files.
	Infer(ctx context.Context, paths []string) (*Result, error)
}

// Result describes a finished run.
type Result struct {
	// RunID identifies the run in logs and reports.
	RunID string
	// Documents is the number of parsed documents.
	Documents int
	// Bytes is the total size of the parsed documents.
	Bytes int64
	// ComplexTypesBefore and SimpleTypesBefore are the type counts
	// after extraction, before merging.
	ComplexTypesBefore int
	SimpleTypesBefore  int
	// Merge summarizes the merge step.
	Merge merge.Summary
	// Schema is the merged schema.
	Schema *schema.Schema
}
