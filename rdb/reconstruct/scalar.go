package reconstruct

import (
	"github.com/hatlonely/busliste/rdb"
)

// Scalar 单个表达式构成的记录，例如聚合结果
//
//	reconstruct.T2(personDescriptor, reconstruct.Scalar[int64]("COUNT(registration.person_id)"))
func Scalar[T any](expr string, tables ...string) Descriptor[T] {
	return scalar[T]{expr: expr, tables: tables}
}

type scalar[T any] struct {
	expr   string
	tables []string
}

func (s scalar[T]) RequiredTables() []string {
	return append([]string(nil), s.tables...)
}

func (s scalar[T]) RequiredJoins() []Join {
	return nil
}

func (s scalar[T]) SelectExprs() []string {
	return []string{s.expr}
}

func (s scalar[T]) FromRow(row []rdb.Value) (T, error) {
	var v T
	c := NewCursor(row, s.SelectExprs())
	if err := c.Next(&v); err != nil {
		return v, err
	}
	return v, c.Done()
}
