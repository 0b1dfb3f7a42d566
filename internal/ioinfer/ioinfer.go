// Package ioinfer implements the Inferrer interface. It reads sample
// documents from the file system, runs extraction and merging, and
// writes the schema and the statistics report.
package ioinfer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/xsdinfer/internal/iofs"
	"github.com/gnames/xsdinfer/internal/ioreport"
	"github.com/gnames/xsdinfer/internal/ioxml"
	"github.com/gnames/xsdinfer/pkg/compare"
	"github.com/gnames/xsdinfer/pkg/config"
	"github.com/gnames/xsdinfer/pkg/datatype"
	"github.com/gnames/xsdinfer/pkg/extract"
	"github.com/gnames/xsdinfer/pkg/inference"
	"github.com/gnames/xsdinfer/pkg/merge"
	"github.com/gnames/xsdinfer/pkg/schema"
	"github.com/gnames/xsdinfer/pkg/xsdgen"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

type inferrer struct {
	cfg *config.Config
	// stdout receives the schema when no output file is set.
	stdout   io.Writer
	progress bool
}

// New creates a new Inferrer.
func New(cfg *config.Config) inference.Inferrer {
	return &inferrer{
		cfg:      cfg,
		stdout:   os.Stdout,
		progress: isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// Infer runs the whole inference: collect, parse, extract, merge, write.
func (in *inferrer) Infer(
	ctx context.Context,
	paths []string,
) (*inference.Result, error) {
	startTime := time.Now()
	res := &inference.Result{RunID: uuid.NewString()}
	slog.Info("Starting schema inference", "run_id", res.RunID)

	files, err := ioxml.Collect(paths)
	if err != nil {
		return nil, err
	}
	slog.Info("Collected sample files", "count", len(files))

	docs, err := ioxml.Load(ctx, files, in.cfg.JobsNumber, in.progress)
	if err != nil {
		return nil, err
	}
	res.Documents = len(docs)

	policy := datatype.NewPolicy(datatype.Thresholds{
		MinEnumValues: in.cfg.Infer.MinEnumValues,
		MaxEnumValues: in.cfg.Infer.MaxEnumValues,
	})

	s, err := in.extract(docs, policy, res)
	if err != nil {
		return nil, err
	}

	m := merge.New(policy, in.comparators(),
		merge.OptSeparator(in.cfg.Infer.TypeNameSeparator))
	res.Merge = m.Merge(s)
	slog.Info("Merged types",
		"complex_merges", res.Merge.ComplexMerges,
		"simple_merges", res.Merge.SimpleMerges,
		"forced_complex_merges", res.Merge.ForcedComplexMerges,
		"forced_simple_merges", res.Merge.ForcedSimpleMerges,
		"complex_types", res.Merge.ComplexTypes,
		"simple_types", res.Merge.SimpleTypes,
	)

	if err = s.Validate(); err != nil {
		return nil, InvalidSchemaError(err)
	}
	res.Schema = s

	if err = in.writeSchema(s); err != nil {
		return nil, err
	}

	if in.cfg.Infer.ReportFile != "" {
		r := ioreport.Build(res.RunID, s)
		err = ioreport.Write(in.cfg.Infer.ReportFile, in.cfg.Infer.ReportFormat, r)
		if err != nil {
			return nil, err
		}
	}

	duration := time.Since(startTime)
	slog.Info("Schema inference complete",
		"run_id", res.RunID,
		"documents", res.Documents,
		"bytes", humanize.Bytes(uint64(res.Bytes)),
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	return res, nil
}

func (in *inferrer) extract(
	docs []*ioxml.Document,
	policy datatype.Policy,
	res *inference.Result,
) (*schema.Schema, error) {
	x := extract.New(len(docs), policy)
	for _, d := range docs {
		if err := x.Add(d.Index, d.Root); err != nil {
			slog.Error("Cannot extract types", "file", d.Path, "error", err)
			return nil, err
		}
		res.Bytes += d.Size
	}
	s := x.Finish()
	res.ComplexTypesBefore = len(s.ComplexTypes)
	res.SimpleTypesBefore = len(s.SimpleTypes)
	slog.Info("Extracted types",
		"complex_types", humanize.Comma(int64(res.ComplexTypesBefore)),
		"simple_types", humanize.Comma(int64(res.SimpleTypesBefore)),
	)
	return s, nil
}

// comparators builds the configured comparators. Unknown names are
// reported and replaced by "never".
func (in *inferrer) comparators() compare.Comparators {
	c := in.cfg.Infer
	res, err := compare.New(compare.Names{
		ChildrenPattern:         c.ChildrenPatternComparator,
		SameNameChildrenPattern: c.SameNameChildrenPatternComparator,
		AttributeList:           c.AttributeListComparator,
		SameNameAttributeList:   c.SameNameAttributeListComparator,
		Enum:                    c.EnumComparator,
		SameNameEnum:            c.SameNameEnumComparator,
	})
	var unknown compare.UnknownComparatorError
	if errors.As(err, &unknown) {
		err = ComparatorNameError(unknown)
		slog.Warn("Unknown comparators", "error", err)
		var gnErr *gn.Error
		if errors.As(err, &gnErr) {
			gn.Warn(gnErr.Msg, gnErr.Vars...)
		}
	}
	return res
}

func (in *inferrer) writeSchema(s *schema.Schema) error {
	path := in.cfg.Infer.OutputFile
	if path == "" {
		return xsdgen.Write(in.stdout, s)
	}

	f, err := iofs.CreateFile(path)
	if err != nil {
		return err
	}
	if err = xsdgen.Write(f, s); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return iofs.WriteFileError(path, err)
	}
	slog.Info("Schema saved", "path", path)
	return nil
}
