package ioreport

import (
	"log/slog"

	"github.com/gnames/gnfmt"
	"github.com/gnames/xsdinfer/internal/iofs"
	"gopkg.in/yaml.v3"
)

// Write saves r to path in the given format: "yaml", "json" or
// "sqlite". An existing file is replaced.
func Write(path, format string, r *Report) error {
	var err error
	switch format {
	case "yaml":
		err = writeYAML(path, r)
	case "json":
		err = writeJSON(path, r)
	case "sqlite":
		err = writeSQLite(path, r)
	default:
		return ReportFormatError(format)
	}
	if err != nil {
		return err
	}
	slog.Info("Report saved",
		"path", path, "format", format, "types", len(r.ComplexTypes))
	return nil
}

func writeYAML(path string, r *Report) error {
	out, err := yaml.Marshal(r)
	if err != nil {
		return ReportWriteError(path, err)
	}
	return iofs.WriteFile(path, out)
}

func writeJSON(path string, r *Report) error {
	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(r)
	if err != nil {
		return ReportWriteError(path, err)
	}
	return iofs.WriteFile(path, append(out, '\n'))
}
