// Package query 组合 WHERE 和 ON 子句中的条件
//
//	q := &query.BoolQuery{Must: []query.Query{
//		&query.TermQuery{Field: "registration.registered", Value: true},
//		&query.RangeQuery{Field: "drive.drivedate", Gte: from},
//	}}
//	sel, err := statement.WhereQuery(q)
//
// 参数按 ? 占位符的顺序返回，由 rdb.Args 编码。
package query

import "reflect"

// QueryType 查询类型
type QueryType string

const (
	QueryTypeBool  QueryType = "bool"
	QueryTypeTerm  QueryType = "term"
	QueryTypeRange QueryType = "range"
	QueryTypeRaw   QueryType = "raw"
)

// Query 条件节点
type Query interface {
	Type() QueryType
	ToSQL() (string, []any, error)
}

// absent nil 和值为 nil 的指针都表示没有这个条件
func absent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
