package ioxml

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/xsdinfer/pkg/errcode"
)

func NoInputFilesError(paths []string) error {
	msg := "No XML files found in %v"
	vars := []any{paths}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NoInputFilesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no xml files in %v", fn, paths),
	}
}

func CollectFilesError(path string, err error) error {
	msg := "Cannot read input <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CollectFilesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot collect files from %s: %w", fn, path, err),
	}
}

func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

func ParseXMLError(path string, err error) error {
	msg := "Cannot parse XML in <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParseXMLError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse %s: %w", fn, path, err),
	}
}
