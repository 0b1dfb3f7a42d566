package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/xsdinfer/pkg/errcode"
)

// CreateDirError reports a config or cache directory that could not be
// created.
func CreateDirError(dir string, err error) error {
	return pathError(errcode.CreateDirError,
		"Cannot create directory <em>%s</em>", "create directory", dir, err)
}

// CopyFileError reports a default config.yaml that could not be written.
func CopyFileError(file string, err error) error {
	return pathError(errcode.CopyFileError,
		"Cannot write default config to <em>%s</em>", "write default config", file, err)
}

// ReadFileError reports an unreadable config file or XML document.
func ReadFileError(path string, err error) error {
	return pathError(errcode.ReadFileError,
		"Cannot read <em>%s</em>", "read", path, err)
}

// CreateFileError reports a schema or report file that could not be
// created.
func CreateFileError(path string, err error) error {
	return pathError(errcode.CreateFileError,
		"Cannot create output file <em>%s</em>", "create", path, err)
}

// WriteFileError reports a failed write of a schema or report file.
func WriteFileError(path string, err error) error {
	return pathError(errcode.WriteFileError,
		"Cannot write output file <em>%s</em>", "write", path, err)
}

// pathError builds the error for a failed file operation on path. The
// wrapped error names the function that called the public constructor.
func pathError(code gn.ErrorCode, msg, op, path string, err error) error {
	pc, _, _, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot %s %s: %w", fn.Name(), op, path, err),
	}
}
