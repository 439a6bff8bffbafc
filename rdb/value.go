package rdb

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Kind 单元格值的存储类型
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value 数据库单元格的值，只能是 null/integer/real/text/blob 之一
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    []byte
}

func Null() Value { return Value{kind: KindNull} }

func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

func Real(f float64) Value { return Value{kind: KindReal, f: f} }

func Text(s string) Value { return Value{kind: KindText, s: s} }

func Blob(b []byte) Value { return Value{kind: KindBlob, b: b} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Integer() (int64, bool) {
	return v.i, v.kind == KindInteger
}

func (v Value) Real() (float64, bool) {
	return v.f, v.kind == KindReal
}

func (v Value) Text() (string, bool) {
	return v.s, v.kind == KindText
}

func (v Value) Blob() ([]byte, bool) {
	return v.b, v.kind == KindBlob
}

// Equal 比较两个值的类型和内容
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.i == o.i
	case KindReal:
		return v.f == o.f
	case KindText:
		return v.s == o.s
	case KindBlob:
		return string(v.b) == string(o.b)
	}
	return true
}

// String 用于展示，null 显示为空字符串，blob 按 utf8 宽松解码
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	case KindBlob:
		return strings.ToValidUTF8(string(v.b), string(utf8.RuneError))
	}
	return ""
}

// GoString 便于测试失败时查看类型
func (v Value) GoString() string {
	if v.kind == KindNull {
		return "rdb.Value{null}"
	}
	return fmt.Sprintf("rdb.Value{%s %q}", v.kind, v.String())
}

// Value 实现 driver.Valuer，可以直接作为查询参数绑定
func (v Value) Value() (driver.Value, error) {
	switch v.kind {
	case KindInteger:
		return v.i, nil
	case KindReal:
		return v.f, nil
	case KindText:
		return v.s, nil
	case KindBlob:
		return v.b, nil
	}
	return nil, nil
}

// FromDriver 将 database/sql 扫描出的原始值转换为 Value
func FromDriver(src any) (Value, error) {
	switch x := src.(type) {
	case nil:
		return Null(), nil
	case int64:
		return Integer(x), nil
	case int:
		return Integer(int64(x)), nil
	case int32:
		return Integer(int64(x)), nil
	case float64:
		return Real(x), nil
	case float32:
		return Real(float64(x)), nil
	case bool:
		if x {
			return Integer(1), nil
		}
		return Integer(0), nil
	case string:
		return Text(x), nil
	case []byte:
		// Value 不与调用方共享底层数组
		b := make([]byte, len(x))
		copy(b, x)
		return Blob(b), nil
	case time.Time:
		return Text(FormatTime(x)), nil
	case Value:
		return x, nil
	}
	return Value{}, &ConversionError{Expected: "driver value", Actual: fmt.Sprintf("%T", src), Column: -1}
}
