package query

import (
	"strings"

	"github.com/pkg/errors"
)

// RawQuery 原样使用的条件，用于列之间的比较
//
//	&query.RawQuery{Expr: "registration.drive_id = drive.drive_id"}
type RawQuery struct {
	Expr string
	Args []any
}

func (q *RawQuery) Type() QueryType {
	return QueryTypeRaw
}

func (q *RawQuery) ToSQL() (string, []any, error) {
	if strings.TrimSpace(q.Expr) == "" {
		return "", nil, errors.New("raw query without expression")
	}
	if n := strings.Count(q.Expr, "?"); n != len(q.Args) {
		return "", nil, errors.Errorf("raw query has %d placeholders but %d args", n, len(q.Args))
	}
	return q.Expr, q.Args, nil
}
