package ioinfer

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/xsdinfer/pkg/compare"
	"github.com/gnames/xsdinfer/pkg/errcode"
)

func ComparatorNameError(err compare.UnknownComparatorError) error {
	msg := "Unknown comparators <em>%s</em>, using <em>%s</em> instead"
	vars := []any{strings.Join(err, ", "), compare.Never}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ComparatorNameError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func InvalidSchemaError(err error) error {
	msg := "Merged schema is inconsistent"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InvalidSchemaError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: invalid schema: %w", fn, err),
	}
}
