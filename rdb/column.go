package rdb

import (
	"database/sql"
	"math"
	"reflect"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ValueDecoder 自定义标量类型从单元格解析自身
type ValueDecoder interface {
	DecodeValue(v Value) error
}

// ValueEncoder 自定义标量类型转换为单元格
type ValueEncoder interface {
	EncodeValue() (Value, error)
}

var (
	timeType         = reflect.TypeOf(time.Time{})
	bytesType        = reflect.TypeOf([]byte(nil))
	valueType        = reflect.TypeOf(Value{})
	valueDecoderType = reflect.TypeOf((*ValueDecoder)(nil)).Elem()
	valueEncoderType = reflect.TypeOf((*ValueEncoder)(nil)).Elem()
)

// Decode 将单元格转换到 dst 指向的值，dst 必须是非 nil 指针
func Decode(v Value, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.Errorf("decode destination must be a non-nil pointer, got %T", dst)
	}
	return DecodeValue(v, rv.Elem())
}

// IsScalar 判断类型是否可以由单个单元格表示
func IsScalar(rt reflect.Type) bool {
	if rt.Implements(valueDecoderType) || reflect.PointerTo(rt).Implements(valueDecoderType) {
		return true
	}
	switch rt {
	case timeType, bytesType, valueType:
		return true
	}
	switch rt.Kind() {
	case reflect.Ptr:
		return IsScalar(rt.Elem())
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// DecodeValue 将单元格写入可设置的 rv
func DecodeValue(v Value, rv reflect.Value) error {
	rt := rv.Type()

	if rt.Kind() == reflect.Ptr {
		// 可空包装：NULL 映射为 nil
		if v.IsNull() {
			rv.Set(reflect.Zero(rt))
			return nil
		}
		elem := reflect.New(rt.Elem())
		if err := DecodeValue(v, elem.Elem()); err != nil {
			return err
		}
		rv.Set(elem)
		return nil
	}

	if rt == valueType {
		rv.Set(reflect.ValueOf(v))
		return nil
	}

	if rv.CanAddr() && rv.Addr().Type().Implements(valueDecoderType) {
		return rv.Addr().Interface().(ValueDecoder).DecodeValue(v)
	}

	if v.IsNull() {
		return NewConversionError(typeName(rt), "null", nil)
	}

	if rt == timeType {
		t, err := decodeTime(v)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(t))
		return nil
	}

	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := v.Integer()
		if !ok {
			return NewConversionError(typeName(rt), v.Kind().String(), nil)
		}
		if rv.OverflowInt(i) {
			return NewConversionError(typeName(rt), v.Kind().String(), errors.Errorf("%d out of range", i))
		}
		rv.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := v.Integer()
		if !ok {
			return NewConversionError(typeName(rt), v.Kind().String(), nil)
		}
		if i < 0 || rv.OverflowUint(uint64(i)) {
			return NewConversionError(typeName(rt), v.Kind().String(), errors.Errorf("%d out of range", i))
		}
		rv.SetUint(uint64(i))
		return nil
	case reflect.Float32, reflect.Float64:
		var f float64
		switch v.Kind() {
		case KindReal:
			f = v.f
		case KindInteger:
			f = float64(v.i)
		default:
			return NewConversionError(typeName(rt), v.Kind().String(), nil)
		}
		if rv.OverflowFloat(f) {
			return NewConversionError(typeName(rt), v.Kind().String(), errors.Errorf("%g out of range", f))
		}
		rv.SetFloat(f)
		return nil
	case reflect.Bool:
		i, ok := v.Integer()
		if !ok {
			return NewConversionError("bool", v.Kind().String(), nil)
		}
		switch i {
		case 0:
			rv.SetBool(false)
		case 1:
			rv.SetBool(true)
		default:
			return NewConversionError("bool", v.Kind().String(), errors.Errorf("%d is neither 0 nor 1", i))
		}
		return nil
	case reflect.String:
		s, err := decodeText(v)
		if err != nil {
			return NewConversionError(typeName(rt), v.Kind().String(), err)
		}
		rv.SetString(s)
		return nil
	case reflect.Slice:
		if rt.Elem().Kind() != reflect.Uint8 {
			break
		}
		switch v.Kind() {
		case KindBlob:
			rv.SetBytes(append([]byte(nil), v.b...))
		case KindText:
			rv.SetBytes([]byte(v.s))
		default:
			return NewConversionError(typeName(rt), v.Kind().String(), nil)
		}
		return nil
	}

	return NewConversionError(typeName(rt), v.Kind().String(), errors.New("unsupported target type"))
}

// Encode 将 Go 值转换为单元格，不做有损转换
func Encode(src any) (Value, error) {
	if src == nil {
		return Null(), nil
	}
	switch x := src.(type) {
	case Value:
		return x, nil
	case time.Time:
		return Text(FormatTime(x)), nil
	case []byte:
		if x == nil {
			return Null(), nil
		}
		return Blob(x), nil
	}
	return EncodeValue(reflect.ValueOf(src))
}

func EncodeValue(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}
	rt := rv.Type()

	if rt.Implements(valueEncoderType) {
		if rt.Kind() == reflect.Ptr && rv.IsNil() {
			return Null(), nil
		}
		return rv.Interface().(ValueEncoder).EncodeValue()
	}
	if rt == timeType {
		return Text(FormatTime(rv.Interface().(time.Time))), nil
	}
	if rt == valueType {
		return rv.Interface().(Value), nil
	}

	switch rt.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return EncodeValue(rv.Elem())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, NewConversionError("integer", typeName(rt), errors.Errorf("%d out of range", u))
		}
		return Integer(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Real(rv.Float()), nil
	case reflect.Bool:
		if rv.Bool() {
			return Integer(1), nil
		}
		return Integer(0), nil
	case reflect.String:
		return Text(rv.String()), nil
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			if rv.IsNil() {
				return Null(), nil
			}
			return Blob(rv.Bytes()), nil
		}
	}
	return Value{}, NewConversionError("cell value", typeName(rt), errors.New("unsupported source type"))
}

// MustEncode 用于参数已知可编码的场景
func MustEncode(src any) Value {
	v, err := Encode(src)
	if err != nil {
		panic(err)
	}
	return v
}

func decodeText(v Value) (string, error) {
	switch v.Kind() {
	case KindText:
		return v.s, nil
	case KindBlob:
		if !utf8.Valid(v.b) {
			return "", errors.New("blob is not valid utf8")
		}
		return string(v.b), nil
	}
	return "", errors.Errorf("expected text, got %s", v.Kind())
}

func decodeTime(v Value) (time.Time, error) {
	switch v.Kind() {
	case KindInteger:
		return time.Unix(v.i, 0).UTC(), nil
	case KindText, KindBlob:
		s, err := decodeText(v)
		if err != nil {
			return time.Time{}, NewConversionError("time", v.Kind().String(), err)
		}
		t, err := ParseTime(s)
		if err != nil {
			return time.Time{}, NewConversionError("time", v.Kind().String(), err)
		}
		return t, nil
	}
	return time.Time{}, NewConversionError("time", v.Kind().String(), nil)
}

func typeName(rt reflect.Type) string {
	return rt.String()
}

// Args 将查询参数逐个编码，sql.NamedArg 保留名称
func Args(params ...any) ([]any, error) {
	args := make([]any, 0, len(params))
	for i, param := range params {
		if named, ok := param.(sql.NamedArg); ok {
			v, err := Encode(named.Value)
			if err != nil {
				return nil, errors.WithMessage(err, "param "+named.Name)
			}
			args = append(args, sql.Named(named.Name, v))
			continue
		}
		v, err := Encode(param)
		if err != nil {
			return nil, errors.WithMessage(err, "param "+strconv.Itoa(i))
		}
		args = append(args, v)
	}
	return args, nil
}
