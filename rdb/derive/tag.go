package derive

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const tagName = "sql"

const (
	keyTable           = "table"
	keyColumn          = "column"
	keyExpr            = "expr"
	keyComplex         = "complex"
	keyJoinedOn        = "joined_on"
	keyConditionInJoin = "condition_in_join"
)

var boolKeys = map[string]bool{
	keyComplex:         true,
	keyConditionInJoin: true,
}

var stringKeys = map[string]bool{
	keyTable:    true,
	keyColumn:   true,
	keyExpr:     true,
	keyJoinedOn: true,
}

// fieldTag 字段上的 sql tag
type fieldTag struct {
	table           string
	column          string
	expr            string
	complex         bool
	joinedOn        string
	conditionInJoin bool
	ignore          bool

	seen map[string]bool
}

func (t *fieldTag) has(key string) bool {
	return t.seen[key]
}

// parseTag 解析 `sql:"column=drive_id"`、`sql:"complex,joined_on=a.id = b.id"` 等形式
//
// 逗号只在括号和单引号之外分隔参数，值可以用单引号包裹；
// 第一个不带 = 的参数如果不是布尔开关，视为列名
func parseTag(tag string) (*fieldTag, error) {
	t := &fieldTag{seen: map[string]bool{}}
	if tag == "" {
		return t, nil
	}
	if tag == "-" {
		t.ignore = true
		return t, nil
	}

	parts, err := splitTag(tag)
	if err != nil {
		return nil, err
	}

	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))

		if !hasValue && i == 0 && !boolKeys[key] && !stringKeys[key] {
			key, value, hasValue = keyColumn, key, true
		}

		if t.seen[key] {
			return nil, fmt.Errorf("same key %q specified multiple times", key)
		}
		t.seen[key] = true

		switch {
		case boolKeys[key]:
			b := true
			if hasValue {
				if b, err = strconv.ParseBool(value); err != nil {
					return nil, fmt.Errorf("key %q expects a boolean literal, got %q", key, value)
				}
			}
			switch key {
			case keyComplex:
				t.complex = b
			case keyConditionInJoin:
				t.conditionInJoin = b
			}
		case stringKeys[key]:
			if !hasValue || value == "" {
				return nil, fmt.Errorf("key %q expects a non-empty string literal", key)
			}
			switch key {
			case keyTable:
				t.table = value
			case keyColumn:
				t.column = value
			case keyExpr:
				t.expr = value
			case keyJoinedOn:
				t.joinedOn = value
			}
		default:
			return nil, fmt.Errorf("unknown key %q", key)
		}
	}

	if err := t.check(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *fieldTag) check() error {
	if t.has(keyColumn) && t.has(keyExpr) {
		return fmt.Errorf("%q conflicts with %q", keyColumn, keyExpr)
	}
	if t.complex && (t.has(keyColumn) || t.has(keyExpr)) {
		return fmt.Errorf("%q field cannot declare %q or %q", keyComplex, keyColumn, keyExpr)
	}
	if t.joinedOn != "" && t.conditionInJoin {
		return fmt.Errorf("%q conflicts with %q", keyJoinedOn, keyConditionInJoin)
	}
	if !t.complex && (t.joinedOn != "" || t.conditionInJoin) {
		return fmt.Errorf("join clause requires %q", keyComplex)
	}
	return nil
}

func splitTag(tag string) ([]string, error) {
	var parts []string
	var quoted bool
	depth := 0
	start := 0
	for i, r := range tag {
		switch {
		case r == '\'':
			quoted = !quoted
		case quoted:
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses in tag %q", tag)
			}
		case r == ',' && depth == 0:
			parts = append(parts, tag[start:i])
			start = i + 1
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quote in tag %q", tag)
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses in tag %q", tag)
	}
	return append(parts, tag[start:]), nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

// snakeCase 字段名转列名：IsVisible -> is_visible，PersonID -> person_id
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
