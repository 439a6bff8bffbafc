// Package statement 根据记录描述生成 SELECT 语句并执行
//
// 生成的语句形如：
//
//	SELECT <exprs> FROM <tables> [LEFT OUTER JOIN <table> ON (<clause>)]* WHERE <condition> [GROUP BY <exprs>] [ORDER BY <expr> ASC|DESC]
//
// FROM 中的表按首次出现的顺序去重，出现在 join 中的表不再出现在 FROM 中；
// 记录声明了调用方条件标记时，条件放到对应 join 的 ON 子句中，WHERE 为 true。
package statement

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hatlonely/busliste/rdb"
	"github.com/hatlonely/busliste/rdb/query"
	"github.com/hatlonely/busliste/rdb/reconstruct"
	"github.com/pkg/errors"
)

// Queryer *sql.DB、*sql.Tx、*sql.Conn 和 ObservableQueryer 都满足
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// DB 同时支持查询和执行
type DB interface {
	Queryer
	Execer
}

type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

type OrderBy struct {
	Expr      string
	Direction Direction
}

func Asc(expr string) *OrderBy {
	return &OrderBy{Expr: expr, Direction: Ascending}
}

func Desc(expr string) *OrderBy {
	return &OrderBy{Expr: expr, Direction: Descending}
}

// Select 调用方提供的过滤条件、参数和排序
type Select struct {
	// Condition 为空时等价于 true
	Condition string
	// Params 按位置或用 sql.Named 绑定到 Condition 中的占位符
	Params []any
	// Group 不受调用方条件标记影响，始终在 WHERE 之后
	Group []string
	Order *OrderBy
}

// Where 构造 Select
//
//	statement.Where("drive.drivedate = ?", date).OrderBy(statement.Asc("drive.drivedate"))
func Where(condition string, params ...any) Select {
	return Select{Condition: condition, Params: params}
}

// WhereQuery 由组合条件构造 Select
func WhereQuery(q query.Query) (Select, error) {
	if q == nil {
		return Select{}, nil
	}
	condition, params, err := q.ToSQL()
	if err != nil {
		return Select{}, errors.WithMessage(err, "build condition failed")
	}
	return Where(condition, params...), nil
}

func (s Select) GroupBy(exprs ...string) Select {
	s.Group = exprs
	return s
}

func (s Select) OrderBy(order *OrderBy) Select {
	s.Order = order
	return s
}

// Build 生成语句文本
func Build(sel Select, m reconstruct.Meta) string {
	joins := m.RequiredJoins()

	joined := map[string]bool{}
	for _, j := range joins {
		joined[j.Table] = true
	}

	seen := map[string]bool{}
	var tables []string
	for _, t := range m.RequiredTables() {
		if seen[t] || joined[t] {
			continue
		}
		seen[t] = true
		tables = append(tables, t)
	}

	condition := sel.Condition
	if condition == "" {
		condition = "true"
	}
	where := condition

	var buf strings.Builder
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(m.SelectExprs(), ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(strings.Join(tables, ", "))
	for _, j := range joins {
		on := j.Clause.Expr()
		if j.Clause.IsCallerCondition() {
			on = condition
			where = "true"
		}
		fmt.Fprintf(&buf, " LEFT OUTER JOIN %s ON (%s)", j.Table, on)
	}
	buf.WriteString(" WHERE ")
	buf.WriteString(where)
	if len(sel.Group) > 0 {
		buf.WriteString(" GROUP BY ")
		buf.WriteString(strings.Join(sel.Group, ", "))
	}
	if sel.Order != nil {
		direction := sel.Order.Direction
		if direction == "" {
			direction = Ascending
		}
		fmt.Fprintf(&buf, " ORDER BY %s %s", sel.Order.Expr, direction)
	}

	return buf.String()
}

// Run 执行查询并重建每一行，任何一行出错都丢弃已有结果并返回错误
func Run[T any](ctx context.Context, q Queryer, sel Select, d reconstruct.Descriptor[T]) ([]T, error) {
	query := Build(sel, d)

	args, err := rdb.Args(sel.Params...)
	if err != nil {
		return nil, errors.WithMessage(err, "encode params failed")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "query failed [%s]", query)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "rows.Columns failed")
	}

	exprs := d.SelectExprs()
	raw := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range raw {
		dest[i] = &raw[i]
	}

	var results []T
	for n := 0; rows.Next(); n++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "scan row %d failed", n)
		}

		values := make([]rdb.Value, len(raw))
		for i, src := range raw {
			v, err := rdb.FromDriver(src)
			if err != nil {
				return nil, annotate(err, n, i, exprs)
			}
			values[i] = v
		}

		v, err := d.FromRow(values)
		if err != nil {
			return nil, annotate(err, n, -1, nil)
		}
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate rows failed")
	}

	return results, nil
}

// First 返回第一行，没有结果时返回 rdb.ErrRecordNotFound
func First[T any](ctx context.Context, q Queryer, sel Select, d reconstruct.Descriptor[T]) (T, error) {
	var zero T
	results, err := Run(ctx, q, sel, d)
	if err != nil {
		return zero, err
	}
	if len(results) == 0 {
		return zero, rdb.ErrRecordNotFound
	}
	return results[0], nil
}

func annotate(err error, row int, column int, exprs []string) error {
	var ce *rdb.ConversionError
	if errors.As(err, &ce) {
		if column >= 0 {
			expr := ""
			if column < len(exprs) {
				expr = exprs[column]
			}
			ce.AtColumn(column, expr)
		}
		ce.AtRow(row)
	}
	return err
}
