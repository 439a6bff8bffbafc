package rdb

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)

// ErrCode 重建错误的分类
type ErrCode string

const (
	ErrCodeUnknown         ErrCode = ""
	ErrCodeNotEnoughValues ErrCode = "NotEnoughValues"
	ErrCodeTooManyValues   ErrCode = "TooManyValues"
	ErrCodeConversion      ErrCode = "Conversion"
	ErrCodeDefinition      ErrCode = "Definition"
)

// 使用 errors.Is 判断错误类别：
//
//	if errors.Is(err, rdb.ErrNotEnoughValues) {
//		...
//	}
var (
	ErrNotEnoughValues = Error{Code: ErrCodeNotEnoughValues, Cause: errors.New("not enough values in row, select expressions and reconstruction are out of sync")}
	ErrTooManyValues   = Error{Code: ErrCodeTooManyValues, Cause: errors.New("too many values in row, select expressions and reconstruction are out of sync")}
	ErrConversion      = Error{Code: ErrCodeConversion, Cause: errors.New("value conversion failed")}
	ErrDefinition      = Error{Code: ErrCodeDefinition, Cause: errors.New("invalid record definition")}
)

// Error 重建过程中的错误
type Error struct {
	Code  ErrCode
	While string
	Cause error
}

func (e Error) Error() string {
	if e == (Error{}) {
		return ""
	}
	msg := "rdb error"
	if e.Code != ErrCodeUnknown {
		msg += " " + string(e.Code)
	}
	if e.While != "" {
		msg += " while " + e.While
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is 先比较 Cause，再按 Code 匹配
func (e Error) Is(other error) bool {
	if e.Cause != nil && errors.Is(e.Cause, other) {
		return true
	}
	err, ok := other.(Error)
	return ok && err.Code == e.Code
}

func (e Error) Unwrap() error {
	return e.Cause
}

func (e Error) WithWhile(while string) Error {
	e.While = while
	return e
}

func (e Error) Because(cause error) Error {
	e.Cause = cause
	return e
}

// ConversionError 单元格与 Go 值之间转换失败
type ConversionError struct {
	Expected string
	Actual   string

	// Column 在 select 表达式中的位置，-1 表示未知
	Column int
	Expr   string

	// Row 结果集中的行号，-1 表示未知
	Row int

	Cause error
}

func NewConversionError(expected string, actual string, cause error) *ConversionError {
	return &ConversionError{Expected: expected, Actual: actual, Column: -1, Row: -1, Cause: cause}
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %s to %s", e.Actual, e.Expected)
	if e.Column >= 0 {
		msg += fmt.Sprintf(" at column %d", e.Column)
		if e.Expr != "" {
			msg += fmt.Sprintf(" (%s)", e.Expr)
		}
	}
	if e.Row >= 0 {
		msg += fmt.Sprintf(" in row %d", e.Row)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

func (e *ConversionError) Is(other error) bool {
	err, ok := other.(Error)
	return ok && err.Code == ErrCodeConversion
}

// AtColumn 记录出错的列，只在尚未记录时生效
func (e *ConversionError) AtColumn(column int, expr string) *ConversionError {
	if e.Column < 0 {
		e.Column = column
		e.Expr = expr
	}
	return e
}

// Shift 嵌套记录的列号是相对位置，上层按偏移量修正
func (e *ConversionError) Shift(offset int) *ConversionError {
	if e.Column >= 0 {
		e.Column += offset
	}
	return e
}

func (e *ConversionError) AtRow(row int) *ConversionError {
	e.Row = row
	return e
}

// ShiftColumn 如果 err 是 ConversionError，修正其列号
func ShiftColumn(err error, offset int) error {
	var ce *ConversionError
	if offset != 0 && errors.As(err, &ce) {
		ce.Shift(offset)
	}
	return err
}
