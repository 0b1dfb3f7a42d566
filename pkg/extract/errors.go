package extract

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/xsdinfer/pkg/errcode"
)

func ContentError(doc int, element string, err error) error {
	msg := "Cannot read the content of <em>%s</em> in document %d"
	vars := []any{element, doc}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractContentError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot decode content of %s: %w",
			fn, element, err),
	}
}
