package ioinfer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/xsdinfer/pkg/config"
	"github.com/gnames/xsdinfer/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSamples(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func testInferrer(cfg *config.Config) (*inferrer, *bytes.Buffer) {
	var buf bytes.Buffer
	return &inferrer{cfg: cfg, stdout: &buf}, &buf
}

func TestInferStdout(t *testing.T) {
	assert := assert.New(t)
	dir := writeSamples(t, map[string]string{
		"1.xml": `<root><a><x/></a><b><x/></b></root>`,
		"2.xml": `<root><a><x/></a></root>`,
		// not a sample
		"notes.txt": `<root/>`,
	})
	cfg := config.New()
	cfg.JobsNumber = 2
	in, buf := testInferrer(cfg)

	res, err := in.Infer(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.NotEmpty(res.RunID)
	assert.Equal(2, res.Documents)
	assert.Positive(res.Bytes)
	assert.Equal(5, res.ComplexTypesBefore)
	assert.Less(res.Merge.ComplexTypes, res.ComplexTypesBefore)
	assert.Equal(res.Merge.ComplexTypes, len(res.Schema.ComplexTypes))
	require.NoError(t, res.Schema.Validate())

	out := buf.String()
	assert.Contains(out, "<?xml")
	assert.Contains(out, `name="root"`)
}

func TestInferFiles(t *testing.T) {
	assert := assert.New(t)
	dir := writeSamples(t, map[string]string{
		"book.xml": `<book lang="en"><title>Go</title><year>2015</year></book>`,
	})
	outDir := t.TempDir()
	cfg := config.New()
	cfg.Infer.OutputFile = filepath.Join(outDir, "schema", "book.xsd")
	cfg.Infer.ReportFile = filepath.Join(outDir, "stats.json")
	cfg.Infer.ReportFormat = "json"
	in, buf := testInferrer(cfg)

	_, err := in.Infer(context.Background(),
		[]string{filepath.Join(dir, "book.xml")})
	require.NoError(t, err)
	assert.Empty(buf.String())

	xsd, err := os.ReadFile(cfg.Infer.OutputFile)
	require.NoError(t, err)
	assert.Contains(string(xsd), `name="book"`)
	assert.Contains(string(xsd), "xs:integer")

	report, err := os.ReadFile(cfg.Infer.ReportFile)
	require.NoError(t, err)
	assert.Contains(string(report), `"_book-_title"`)
}

func TestInferUnknownComparator(t *testing.T) {
	dir := writeSamples(t, map[string]string{
		"1.xml": `<root><a/><b/></root>`,
	})
	cfg := config.New()
	cfg.Infer.ChildrenPatternComparator = "fuzzy"
	in, _ := testInferrer(cfg)

	res, err := in.Infer(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.NotNil(t, res.Schema)
}

func TestInferNoInput(t *testing.T) {
	in, _ := testInferrer(config.New())

	_, err := in.Infer(context.Background(), []string{t.TempDir()})
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.NoInputFilesError, gnErr.Code)
}

func TestInferBadXML(t *testing.T) {
	dir := writeSamples(t, map[string]string{
		"1.xml": `<root><a></root>`,
	})
	in, _ := testInferrer(config.New())

	_, err := in.Infer(context.Background(), []string{dir})
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ParseXMLError, gnErr.Code)
}

func TestComparatorNameError(t *testing.T) {
	err := ComparatorNameError([]string{"fuzzy", "loose"})
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ComparatorNameError, gnErr.Code)
	assert.Equal(t, []any{"fuzzy, loose", "never"}, gnErr.Vars)
}
