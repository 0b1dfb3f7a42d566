package cmd

import (
	"testing"

	"github.com/gnames/xsdinfer/pkg/config"
	"github.com/gnames/xsdinfer/pkg/inference"
	"github.com/gnames/xsdinfer/pkg/merge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetInferCmd_Exists verifies getInferCmd returns
// a valid command.
func TestGetInferCmd_Exists(t *testing.T) {
	cmd := getInferCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "infer", cmd.Name())
	assert.NotNil(t, cmd.RunE)
	assert.Contains(t, cmd.Long, "comparators")
}

// TestGetInferCmd_Flags verifies flags and their shorthands.
func TestGetInferCmd_Flags(t *testing.T) {
	cmd := getInferCmd()

	flags := map[string]string{
		"output":        "o",
		"report":        "r",
		"report-format": "f",
		"separator":     "s",
		"jobs":          "j",
	}
	for name, short := range flags {
		f := cmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, short, f.Shorthand, name)
	}
}

// TestGetInferCmd_RequiresArgs verifies that at least one
// path is required.
func TestGetInferCmd_RequiresArgs(t *testing.T) {
	cmd := getInferCmd()
	assert.Error(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"samples"}))
}

// TestInferOptions verifies only changed flags become options.
func TestInferOptions(t *testing.T) {
	cmd := getInferCmd()
	err := cmd.Flags().Parse([]string{
		"-o", "out.xsd", "-f", "sqlite", "--jobs", "3",
	})
	require.NoError(t, err)

	c := config.New()
	sep := c.Infer.TypeNameSeparator
	c.Update(inferOptions(cmd, "out.xsd", "", "sqlite", "", 3))

	assert.Equal(t, "out.xsd", c.Infer.OutputFile)
	assert.Equal(t, "sqlite", c.Infer.ReportFormat)
	assert.Equal(t, 3, c.JobsNumber)
	assert.Empty(t, c.Infer.ReportFile)
	assert.Equal(t, sep, c.Infer.TypeNameSeparator)
}

// TestSummaryMessage verifies the summary shows counts and
// destinations.
func TestSummaryMessage(t *testing.T) {
	assert := assert.New(t)
	res := &inference.Result{
		Documents:          1200,
		Bytes:              2048,
		ComplexTypesBefore: 35,
		SimpleTypesBefore:  60,
		Merge:              merge.Summary{ComplexTypes: 7, SimpleTypes: 12},
	}

	c := config.New()
	msg := summaryMessage(c, res)
	assert.Contains(msg, "1,200 (2.0 kB)")
	assert.Contains(msg, "35 merged into <em>7</em>")
	assert.Contains(msg, "60 merged into <em>12</em>")
	assert.Contains(msg, "STDOUT")
	assert.NotContains(msg, "Report:")

	c.Infer.OutputFile = "schema.xsd"
	c.Infer.ReportFile = "stats.db"
	c.Infer.ReportFormat = "sqlite"
	msg = summaryMessage(c, res)
	assert.Contains(msg, "schema.xsd")
	assert.Contains(msg, "stats.db (sqlite)")
}
