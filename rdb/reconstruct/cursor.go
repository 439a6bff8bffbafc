package reconstruct

import (
	"fmt"

	"github.com/hatlonely/busliste/rdb"
	"github.com/pkg/errors"
)

// Cursor 按位置消费一行值，供手写和生成的 FromRow 使用
type Cursor struct {
	row   []rdb.Value
	exprs []string
	pos   int
}

// NewCursor exprs 可以为 nil，只用于错误信息
func NewCursor(row []rdb.Value, exprs []string) *Cursor {
	return &Cursor{row: row, exprs: exprs}
}

func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) Remaining() int {
	return len(c.row) - c.pos
}

// Value 取下一个原始值
func (c *Cursor) Value() (rdb.Value, error) {
	if c.pos >= len(c.row) {
		return rdb.Value{}, rdb.ErrNotEnoughValues.WithWhile(fmt.Sprintf("reading column %d of %d", c.pos, len(c.row)))
	}
	v := c.row[c.pos]
	c.pos++
	return v, nil
}

// Next 取下一个值并转换到 dst
func (c *Cursor) Next(dst any) error {
	pos := c.pos
	v, err := c.Value()
	if err != nil {
		return err
	}
	if err := rdb.Decode(v, dst); err != nil {
		return c.annotate(err, pos)
	}
	return nil
}

// Take 取接下来的 n 个值
func (c *Cursor) Take(n int) ([]rdb.Value, error) {
	if c.Remaining() < n {
		return nil, rdb.ErrNotEnoughValues.WithWhile(fmt.Sprintf("taking %d values at column %d of %d", n, c.pos, len(c.row)))
	}
	values := c.row[c.pos : c.pos+n]
	c.pos += n
	return values, nil
}

// Done 检查是否恰好消费完
func (c *Cursor) Done() error {
	if c.pos != len(c.row) {
		return rdb.ErrTooManyValues.WithWhile(fmt.Sprintf("consumed %d of %d values", c.pos, len(c.row)))
	}
	return nil
}

func (c *Cursor) annotate(err error, pos int) error {
	var ce *rdb.ConversionError
	if errors.As(err, &ce) {
		expr := ""
		if pos < len(c.exprs) {
			expr = c.exprs[pos]
		}
		ce.AtColumn(pos, expr)
	}
	return err
}

// NextNested 用嵌套记录的描述消费 Width(d) 个值，错误中的列号修正为当前行中的位置
func NextNested[T any](c *Cursor, d Descriptor[T]) (T, error) {
	pos := c.pos
	values, err := c.Take(Width(d))
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := d.FromRow(values)
	if err != nil {
		var zero T
		return zero, rdb.ShiftColumn(err, pos)
	}
	return v, nil
}

// Split 从 row 头部切出 n 个值
func Split(row []rdb.Value, n int) ([]rdb.Value, []rdb.Value, error) {
	if n < 0 || len(row) < n {
		return nil, row, rdb.ErrNotEnoughValues.WithWhile(fmt.Sprintf("splitting %d values from %d", n, len(row)))
	}
	return row[:n], row[n:], nil
}
