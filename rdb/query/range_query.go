package query

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// RangeQuery 范围查询，nil 的边界不生效，没有边界时为 true
type RangeQuery struct {
	Field string
	Gt    any
	Gte   any
	Lt    any
	Lte   any
}

func (q *RangeQuery) Type() QueryType {
	return QueryTypeRange
}

func (q *RangeQuery) ToSQL() (string, []any, error) {
	if q.Field == "" {
		return "", nil, errors.New("range query without field")
	}

	var conditions []string
	var args []any
	for _, bound := range []struct {
		op    string
		value any
	}{{">", q.Gt}, {">=", q.Gte}, {"<", q.Lt}, {"<=", q.Lte}} {
		if absent(bound.value) {
			continue
		}
		conditions = append(conditions, fmt.Sprintf("%s %s ?", q.Field, bound.op))
		args = append(args, bound.value)
	}

	if len(conditions) == 0 {
		return "true", nil, nil
	}
	return strings.Join(conditions, " AND "), args, nil
}
