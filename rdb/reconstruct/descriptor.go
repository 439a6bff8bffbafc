// Package reconstruct 定义可以从查询结果行重建的记录类型
//
// 一个记录类型通过 Descriptor 声明它依赖的表、需要的 LEFT OUTER JOIN、
// 重建所需的 select 表达式（顺序即契约），以及如何按同样的顺序消费一行值。
// 嵌套记录和元组按成员顺序拼接各自的声明。
package reconstruct

import (
	"github.com/hatlonely/busliste/rdb"
)

// Meta 记录类型的静态元信息，与具体行无关
type Meta interface {
	// RequiredTables 记录所在或依赖的表，不含仅通过 join 到达的表
	RequiredTables() []string
	// RequiredJoins 重建需要的 LEFT OUTER JOIN
	RequiredJoins() []Join
	// SelectExprs 重建所需的表达式，FromRow 按相同顺序消费
	SelectExprs() []string
}

// Descriptor 记录描述
type Descriptor[T any] interface {
	Meta
	// FromRow 恰好消费 len(SelectExprs()) 个值
	FromRow(row []rdb.Value) (T, error)
}

// JoinClause join 的 ON 子句，静态表达式或调用方条件标记
type JoinClause struct {
	expr            string
	callerCondition bool
}

// On 静态 ON 条件
func On(expr string) JoinClause {
	return JoinClause{expr: expr}
}

// UseCallerCondition 调用方的过滤条件放到该 join 的 ON 子句中，WHERE 退化为 true
func UseCallerCondition() JoinClause {
	return JoinClause{callerCondition: true}
}

func (c JoinClause) IsCallerCondition() bool {
	return c.callerCondition
}

func (c JoinClause) Expr() string {
	return c.expr
}

func (c JoinClause) String() string {
	if c.callerCondition {
		return "<caller condition>"
	}
	return c.expr
}

type Join struct {
	Table  string
	Clause JoinClause
}

// Tables 按顺序拼接多个记录的表
func Tables(members ...Meta) []string {
	var tables []string
	for _, m := range members {
		tables = append(tables, m.RequiredTables()...)
	}
	return tables
}

func Joins(members ...Meta) []Join {
	var joins []Join
	for _, m := range members {
		joins = append(joins, m.RequiredJoins()...)
	}
	return joins
}

func Exprs(members ...Meta) []string {
	var exprs []string
	for _, m := range members {
		exprs = append(exprs, m.SelectExprs()...)
	}
	return exprs
}

// Width 记录消费的值个数
func Width(m Meta) int {
	return len(m.SelectExprs())
}
