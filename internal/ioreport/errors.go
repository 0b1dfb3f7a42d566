package ioreport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/xsdinfer/pkg/errcode"
)

func ReportFormatError(format string) error {
	msg := "Unknown report format <em>%s</em>"
	vars := []any{format}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReportFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown report format %q", fn, format),
	}
}

func ReportWriteError(path string, err error) error {
	msg := "Cannot write report to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReportWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot encode report: %w", fn, err),
	}
}

func ReportDBError(path string, err error) error {
	msg := "Cannot save report to database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReportDBError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: sqlite report failed: %w", fn, err),
	}
}
