package query

import (
	"fmt"

	"github.com/pkg/errors"
)

// TermQuery 精确匹配，Value 为 nil 时匹配 NULL
type TermQuery struct {
	Field string
	Value any
}

func (q *TermQuery) Type() QueryType {
	return QueryTypeTerm
}

func (q *TermQuery) ToSQL() (string, []any, error) {
	if q.Field == "" {
		return "", nil, errors.New("term query without field")
	}
	if absent(q.Value) {
		return fmt.Sprintf("%s IS NULL", q.Field), nil, nil
	}
	return fmt.Sprintf("%s = ?", q.Field), []any{q.Value}, nil
}
