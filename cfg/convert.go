package cfg

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	durationType        = reflect.TypeOf(time.Duration(0))
	timeType            = reflect.TypeOf(time.Time{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// fieldKey 返回字段在配置中的名字，cfg:"-" 和未导出字段返回 false
func fieldKey(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", false
	}
	tag := field.Tag.Get("cfg")
	if tag == "-" {
		return "", false
	}
	if name := strings.Split(tag, ",")[0]; name != "" {
		return name, true
	}
	return field.Name, true
}

// convertValue 将解析出的通用值写入 dst
func convertValue(src any, dst reflect.Value) error {
	if src == nil {
		return nil
	}

	if dst.Kind() == reflect.Ptr {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return convertValue(src, dst.Elem())
	}

	switch dst.Type() {
	case durationType:
		return convertToDuration(src, dst)
	case timeType:
		return convertToTime(src, dst)
	}

	if s, ok := src.(string); ok && dst.CanAddr() && dst.Addr().Type().Implements(textUnmarshalerType) {
		if err := dst.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return errors.Wrapf(err, "unmarshal %q into %v failed", s, dst.Type())
		}
		return nil
	}

	switch dst.Kind() {
	case reflect.Struct:
		return convertToStruct(src, dst)
	case reflect.Map:
		return convertToMap(src, dst)
	case reflect.Slice:
		return convertToSlice(src, dst)
	case reflect.Interface:
		if dst.Type().NumMethod() == 0 {
			dst.Set(reflect.ValueOf(src))
			return nil
		}
		return errors.Errorf("cannot convert %T to %v", src, dst.Type())
	}

	if s, ok := src.(string); ok {
		return convertFromString(s, dst)
	}

	sv := reflect.ValueOf(src)
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if sv.Kind() == reflect.Float32 || sv.Kind() == reflect.Float64 {
			f := sv.Float()
			if f != float64(int64(f)) {
				return errors.Errorf("cannot convert %v to %v without losing precision", f, dst.Type())
			}
			return convertFromString(strconv.FormatInt(int64(f), 10), dst)
		}
		if isInteger(sv.Kind()) {
			return convertFromString(fmt.Sprint(src), dst)
		}
	case reflect.Float32, reflect.Float64:
		if isInteger(sv.Kind()) || sv.Kind() == reflect.Float32 || sv.Kind() == reflect.Float64 {
			dst.Set(sv.Convert(dst.Type()))
			return nil
		}
	case reflect.Bool, reflect.String:
		if sv.Kind() == dst.Kind() {
			dst.Set(sv.Convert(dst.Type()))
			return nil
		}
	}

	return errors.Errorf("cannot convert %T to %v", src, dst.Type())
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// convertFromString 环境变量的值总是字符串，按目标类型解析
func convertFromString(s string, dst reflect.Value) error {
	s = strings.TrimSpace(s)
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return errors.Wrapf(err, "invalid bool value %q", s)
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 0, dst.Type().Bits())
		if err != nil {
			return errors.Wrapf(err, "invalid int value %q", s)
		}
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 0, dst.Type().Bits())
		if err != nil {
			return errors.Wrapf(err, "invalid uint value %q", s)
		}
		dst.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, dst.Type().Bits())
		if err != nil {
			return errors.Wrapf(err, "invalid float value %q", s)
		}
		dst.SetFloat(f)
	default:
		return errors.Errorf("cannot convert string to %v", dst.Type())
	}
	return nil
}

func convertToDuration(src any, dst reflect.Value) error {
	switch v := src.(type) {
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "failed to parse duration %q", v)
		}
		dst.SetInt(int64(d))
	case float64:
		// 浮点数视为秒
		dst.SetInt(int64(v * float64(time.Second)))
	default:
		sv := reflect.ValueOf(src)
		if !isInteger(sv.Kind()) {
			return errors.Errorf("cannot convert %T to time.Duration", src)
		}
		// 整数视为纳秒
		dst.SetInt(sv.Convert(reflect.TypeOf(int64(0))).Int())
	}
	return nil
}

func convertToTime(src any, dst reflect.Value) error {
	switch v := src.(type) {
	case time.Time:
		dst.Set(reflect.ValueOf(v))
		return nil
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				dst.Set(reflect.ValueOf(t))
				return nil
			}
		}
		return errors.Errorf("failed to parse time %q", v)
	}

	sv := reflect.ValueOf(src)
	if isInteger(sv.Kind()) {
		// Unix 时间戳（秒）
		dst.Set(reflect.ValueOf(time.Unix(sv.Convert(reflect.TypeOf(int64(0))).Int(), 0).UTC()))
		return nil
	}
	return errors.Errorf("cannot convert %T to time.Time", src)
}

func convertToStruct(src any, dst reflect.Value) error {
	m, ok := src.(map[string]any)
	if !ok {
		return errors.Errorf("cannot convert %T to %v", src, dst.Type())
	}

	rt := dst.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name, ok := fieldKey(field)
		if !ok {
			continue
		}
		value := lookupKey(m, name)
		if value == nil {
			continue
		}
		if err := convertValue(value, dst.Field(i)); err != nil {
			return errors.WithMessagef(err, "field %s", name)
		}
	}
	return nil
}

func convertToMap(src any, dst reflect.Value) error {
	m, ok := src.(map[string]any)
	if !ok {
		return errors.Errorf("cannot convert %T to %v", src, dst.Type())
	}
	if dst.Type().Key().Kind() != reflect.String {
		return errors.Errorf("map key must be string, got %v", dst.Type().Key())
	}

	if dst.IsNil() {
		dst.Set(reflect.MakeMapWithSize(dst.Type(), len(m)))
	}
	for k, v := range m {
		elem := reflect.New(dst.Type().Elem()).Elem()
		if err := convertValue(v, elem); err != nil {
			return errors.WithMessagef(err, "key %s", k)
		}
		dst.SetMapIndex(reflect.ValueOf(k).Convert(dst.Type().Key()), elem)
	}
	return nil
}

func convertToSlice(src any, dst reflect.Value) error {
	var items []any
	switch v := src.(type) {
	case []any:
		items = v
	case string:
		if dst.Type().Elem().Kind() == reflect.Uint8 {
			dst.SetBytes([]byte(v))
			return nil
		}
		// 环境变量中的列表用逗号分隔
		for _, part := range strings.Split(v, ",") {
			items = append(items, strings.TrimSpace(part))
		}
	default:
		return errors.Errorf("cannot convert %T to %v", src, dst.Type())
	}

	slice := reflect.MakeSlice(dst.Type(), len(items), len(items))
	for i, item := range items {
		if err := convertValue(item, slice.Index(i)); err != nil {
			return errors.WithMessagef(err, "index %d", i)
		}
	}
	dst.Set(slice)
	return nil
}
