/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/xsdinfer/internal/ioinfer"
	"github.com/gnames/xsdinfer/pkg/config"
	"github.com/gnames/xsdinfer/pkg/inference"
	"github.com/spf13/cobra"
)

// getInferCmd returns the infer command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getInferCmd() *cobra.Command {
	var (
		output       string
		report       string
		reportFormat string
		separator    string
		jobs         int
	)

	inferCmd := &cobra.Command{
		Use:   "infer [files or directories...]",
		Short: "Infer an XML schema from sample documents",
		Long: `Infer an XML Schema from sample XML documents.

This command:
  1. Collects the given files; directories are searched for *.xml files
  2. Parses the documents concurrently
  3. Creates a type for every element position in the samples
  4. Merges similar types using the configured comparators
  5. Writes the XSD to STDOUT or to the --output file
  6. Optionally writes occurrence statistics to the --report file

Report formats: yaml, json, sqlite.

Examples:
  # Print the schema of all samples in a directory
  xsdinfer infer samples/

  # Save the schema and a statistics report
  xsdinfer infer a.xml b.xml -o schema.xsd -r stats.yaml

  # Keep statistics in a SQLite database
  xsdinfer infer samples/ -o schema.xsd -r stats.db -f sqlite`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inferOpts := inferOptions(cmd, output, report, reportFormat,
				separator, jobs)
			cfg.Update(inferOpts)

			res, err := runInfer(cmd.Context(), cfg, args)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			printSummary(cfg, res)
			return nil
		},
	}

	inferCmd.Flags().StringVarP(&output, "output", "o", "",
		"file for the schema (default: STDOUT)")
	inferCmd.Flags().StringVarP(&report, "report", "r", "",
		"file for the statistics report (default: no report)")
	inferCmd.Flags().StringVarP(&reportFormat, "report-format", "f", "",
		"report format: yaml, json, sqlite (default: yaml)")
	inferCmd.Flags().StringVarP(&separator, "separator", "s", "",
		"string that joins names of merged types (default: _and_)")
	inferCmd.Flags().IntVarP(&jobs, "jobs", "j", 0,
		"number of concurrent parsers (default: number of CPU cores)")

	return inferCmd
}

// inferOptions converts explicitly set flags to config options.
func inferOptions(
	cmd *cobra.Command,
	output, report, reportFormat, separator string,
	jobs int,
) []config.Option {
	var res []config.Option
	flags := cmd.Flags()
	if flags.Changed("output") {
		res = append(res, config.OptInferOutputFile(output))
	}
	if flags.Changed("report") {
		res = append(res, config.OptInferReportFile(report))
	}
	if flags.Changed("report-format") {
		res = append(res, config.OptInferReportFormat(reportFormat))
	}
	if flags.Changed("separator") {
		res = append(res, config.OptInferTypeNameSeparator(separator))
	}
	if flags.Changed("jobs") {
		res = append(res, config.OptJobsNumber(jobs))
	}
	return res
}

func runInfer(
	ctx context.Context,
	cfg *config.Config,
	paths []string,
) (*inference.Result, error) {
	in := ioinfer.New(cfg)
	return in.Infer(ctx, paths)
}

// printSummary shows the run summary. When the schema went to STDOUT
// the summary is only logged, so it never mixes with the schema.
func printSummary(cfg *config.Config, res *inference.Result) {
	if cfg.Infer.OutputFile == "" {
		slog.Info("Run summary",
			"documents", res.Documents,
			"complex_types", res.Merge.ComplexTypes,
			"simple_types", res.Merge.SimpleTypes,
		)
		return
	}
	gn.Message(summaryMessage(cfg, res))
}

func summaryMessage(cfg *config.Config, res *inference.Result) string {
	output := cfg.Infer.OutputFile
	if output == "" {
		output = "STDOUT"
	}

	msg := fmt.Sprintf(`
<em>Schema inference is complete.</em>
Documents:     %s (%s)
Complex types: %s merged into <em>%s</em>
Simple types:  %s merged into <em>%s</em>
Schema:        %s
`,
		humanize.Comma(int64(res.Documents)),
		humanize.Bytes(uint64(res.Bytes)),
		humanize.Comma(int64(res.ComplexTypesBefore)),
		humanize.Comma(int64(res.Merge.ComplexTypes)),
		humanize.Comma(int64(res.SimpleTypesBefore)),
		humanize.Comma(int64(res.Merge.SimpleTypes)),
		output,
	)
	if cfg.Infer.ReportFile != "" {
		msg += fmt.Sprintf("Report:        %s (%s)\n",
			cfg.Infer.ReportFile, cfg.Infer.ReportFormat)
	}
	return msg
}
