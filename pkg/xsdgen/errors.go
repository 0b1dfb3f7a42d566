package xsdgen

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/xsdinfer/pkg/errcode"
)

func MarshalError(err error) error {
	msg := "Cannot build the XML schema"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.XSDWriteError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot marshal schema: %w", fn, err),
	}
}

func WriteError(err error) error {
	msg := "Cannot write the XML schema"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.XSDWriteError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot write schema: %w", fn, err),
	}
}
