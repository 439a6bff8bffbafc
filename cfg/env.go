package cfg

import (
	"reflect"
	"strings"
	"unicode"
)

type lookupFunc func(key string) (string, bool)

// overlayEnv 按目标结构体的字段路径查找环境变量，找到的值覆盖 tree 中的同名项
//
// 切片和 map 字段不支持环境变量。
func overlayEnv(tree map[string]any, rt reflect.Type, prefix string, lookup lookupFunc) {
	overlayStruct(tree, rt, strings.TrimSuffix(strings.ToUpper(prefix), "_"), lookup, map[reflect.Type]bool{})
}

func overlayStruct(tree map[string]any, rt reflect.Type, prefix string, lookup lookupFunc, visiting map[reflect.Type]bool) {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct || visiting[rt] {
		return
	}
	visiting[rt] = true
	defer delete(visiting, rt)

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name, ok := fieldKey(field)
		if !ok {
			continue
		}
		env := prefix + "_" + envName(name)

		ft := field.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}

		// time.Time 和实现了 TextUnmarshaler 的结构体按单个值处理
		if ft.Kind() == reflect.Struct && !reflect.PointerTo(ft).Implements(textUnmarshalerType) {
			sub, _ := lookupKey(tree, name).(map[string]any)
			if sub == nil {
				sub = map[string]any{}
			}
			overlayStruct(sub, ft, env, lookup, visiting)
			if len(sub) != 0 {
				setKey(tree, name, sub)
			}
			continue
		}

		if ft.Kind() == reflect.Map || (ft.Kind() == reflect.Slice && ft.Elem().Kind() == reflect.Struct) {
			continue
		}

		if value, ok := lookup(env); ok {
			setKey(tree, name, value)
		}
	}
}

// envName maxConns -> MAX_CONNS, JWTKey -> JWT_KEY
func envName(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// setKey 已存在大小写不同的同名键时覆盖该键
func setKey(tree map[string]any, name string, value any) {
	for k := range tree {
		if strings.EqualFold(k, name) {
			tree[k] = value
			return
		}
	}
	tree[name] = value
}

func lookupKey(tree map[string]any, name string) any {
	if v, ok := tree[name]; ok {
		return v
	}
	for k, v := range tree {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return nil
}
