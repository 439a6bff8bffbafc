package query

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// BoolQuery 布尔组合，各部分之间为 AND，没有任何条件时为 true
type BoolQuery struct {
	Must    []Query
	Should  []Query
	MustNot []Query
	// MinShouldMatch 至少满足的 Should 条件数，为空或 1 时用 OR 连接
	MinShouldMatch *int
}

func (q *BoolQuery) Type() QueryType {
	return QueryTypeBool
}

func (q *BoolQuery) ToSQL() (string, []any, error) {
	var conditions []string
	var args []any

	must, mustArgs, err := toSQL(q.Must)
	if err != nil {
		return "", nil, errors.WithMessage(err, "must")
	}
	if len(must) > 0 {
		conditions = append(conditions, "("+strings.Join(must, " AND ")+")")
		args = append(args, mustArgs...)
	}

	should, shouldArgs, err := toSQL(q.Should)
	if err != nil {
		return "", nil, errors.WithMessage(err, "should")
	}
	if len(should) > 0 {
		if q.MinShouldMatch != nil && *q.MinShouldMatch != 1 {
			// 条件计数
			cases := make([]string, len(should))
			for i, condition := range should {
				cases[i] = fmt.Sprintf("CASE WHEN (%s) THEN 1 ELSE 0 END", condition)
			}
			conditions = append(conditions, fmt.Sprintf("(%s) >= %d", strings.Join(cases, " + "), *q.MinShouldMatch))
		} else {
			conditions = append(conditions, "("+strings.Join(should, " OR ")+")")
		}
		args = append(args, shouldArgs...)
	}

	mustNot, mustNotArgs, err := toSQL(q.MustNot)
	if err != nil {
		return "", nil, errors.WithMessage(err, "must not")
	}
	if len(mustNot) > 0 {
		for i, condition := range mustNot {
			mustNot[i] = "NOT (" + condition + ")"
		}
		conditions = append(conditions, "("+strings.Join(mustNot, " AND ")+")")
		args = append(args, mustNotArgs...)
	}

	if len(conditions) == 0 {
		return "true", nil, nil
	}
	return strings.Join(conditions, " AND "), args, nil
}

func toSQL(queries []Query) ([]string, []any, error) {
	conditions := make([]string, 0, len(queries))
	var args []any
	for i, q := range queries {
		if q == nil {
			return nil, nil, errors.Errorf("query %d is nil", i)
		}
		sql, queryArgs, err := q.ToSQL()
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "query %d", i)
		}
		conditions = append(conditions, sql)
		args = append(args, queryArgs...)
	}
	return conditions, args, nil
}
