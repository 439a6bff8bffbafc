package reconstruct

import (
	"github.com/hatlonely/busliste/rdb"
)

// 元组记录：表、join、表达式按成员顺序拼接，FromRow 按各成员的宽度依次切分

type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

// T2 组合 2 个记录描述
func T2[A, B any](d1 Descriptor[A], d2 Descriptor[B]) Descriptor[Tuple2[A, B]] {
	return tuple2[A, B]{d1, d2}
}

type tuple2[A, B any] struct {
	d1 Descriptor[A]
	d2 Descriptor[B]
}

func (t tuple2[A, B]) RequiredTables() []string { return Tables(t.d1, t.d2) }

func (t tuple2[A, B]) RequiredJoins() []Join { return Joins(t.d1, t.d2) }

func (t tuple2[A, B]) SelectExprs() []string { return Exprs(t.d1, t.d2) }

func (t tuple2[A, B]) FromRow(row []rdb.Value) (Tuple2[A, B], error) {
	var out Tuple2[A, B]
	var err error
	c := NewCursor(row, nil)
	if out.V1, err = NextNested(c, t.d1); err != nil {
		return Tuple2[A, B]{}, err
	}
	if out.V2, err = NextNested(c, t.d2); err != nil {
		return Tuple2[A, B]{}, err
	}
	if err := c.Done(); err != nil {
		return Tuple2[A, B]{}, err
	}
	return out, nil
}

type Tuple3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

// T3 组合 3 个记录描述
func T3[A, B, C any](d1 Descriptor[A], d2 Descriptor[B], d3 Descriptor[C]) Descriptor[Tuple3[A, B, C]] {
	return tuple3[A, B, C]{d1, d2, d3}
}

type tuple3[A, B, C any] struct {
	d1 Descriptor[A]
	d2 Descriptor[B]
	d3 Descriptor[C]
}

func (t tuple3[A, B, C]) RequiredTables() []string { return Tables(t.d1, t.d2, t.d3) }

func (t tuple3[A, B, C]) RequiredJoins() []Join { return Joins(t.d1, t.d2, t.d3) }

func (t tuple3[A, B, C]) SelectExprs() []string { return Exprs(t.d1, t.d2, t.d3) }

func (t tuple3[A, B, C]) FromRow(row []rdb.Value) (Tuple3[A, B, C], error) {
	var out Tuple3[A, B, C]
	var err error
	c := NewCursor(row, nil)
	if out.V1, err = NextNested(c, t.d1); err != nil {
		return Tuple3[A, B, C]{}, err
	}
	if out.V2, err = NextNested(c, t.d2); err != nil {
		return Tuple3[A, B, C]{}, err
	}
	if out.V3, err = NextNested(c, t.d3); err != nil {
		return Tuple3[A, B, C]{}, err
	}
	if err := c.Done(); err != nil {
		return Tuple3[A, B, C]{}, err
	}
	return out, nil
}

type Tuple4[A, B, C, D any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
}

// T4 组合 4 个记录描述
func T4[A, B, C, D any](d1 Descriptor[A], d2 Descriptor[B], d3 Descriptor[C], d4 Descriptor[D]) Descriptor[Tuple4[A, B, C, D]] {
	return tuple4[A, B, C, D]{d1, d2, d3, d4}
}

type tuple4[A, B, C, D any] struct {
	d1 Descriptor[A]
	d2 Descriptor[B]
	d3 Descriptor[C]
	d4 Descriptor[D]
}

func (t tuple4[A, B, C, D]) RequiredTables() []string { return Tables(t.d1, t.d2, t.d3, t.d4) }

func (t tuple4[A, B, C, D]) RequiredJoins() []Join { return Joins(t.d1, t.d2, t.d3, t.d4) }

func (t tuple4[A, B, C, D]) SelectExprs() []string { return Exprs(t.d1, t.d2, t.d3, t.d4) }

func (t tuple4[A, B, C, D]) FromRow(row []rdb.Value) (Tuple4[A, B, C, D], error) {
	var out Tuple4[A, B, C, D]
	var err error
	c := NewCursor(row, nil)
	if out.V1, err = NextNested(c, t.d1); err != nil {
		return Tuple4[A, B, C, D]{}, err
	}
	if out.V2, err = NextNested(c, t.d2); err != nil {
		return Tuple4[A, B, C, D]{}, err
	}
	if out.V3, err = NextNested(c, t.d3); err != nil {
		return Tuple4[A, B, C, D]{}, err
	}
	if out.V4, err = NextNested(c, t.d4); err != nil {
		return Tuple4[A, B, C, D]{}, err
	}
	if err := c.Done(); err != nil {
		return Tuple4[A, B, C, D]{}, err
	}
	return out, nil
}

type Tuple5[A, B, C, D, E any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
}

// T5 组合 5 个记录描述
func T5[A, B, C, D, E any](d1 Descriptor[A], d2 Descriptor[B], d3 Descriptor[C], d4 Descriptor[D], d5 Descriptor[E]) Descriptor[Tuple5[A, B, C, D, E]] {
	return tuple5[A, B, C, D, E]{d1, d2, d3, d4, d5}
}

type tuple5[A, B, C, D, E any] struct {
	d1 Descriptor[A]
	d2 Descriptor[B]
	d3 Descriptor[C]
	d4 Descriptor[D]
	d5 Descriptor[E]
}

func (t tuple5[A, B, C, D, E]) RequiredTables() []string { return Tables(t.d1, t.d2, t.d3, t.d4, t.d5) }

func (t tuple5[A, B, C, D, E]) RequiredJoins() []Join { return Joins(t.d1, t.d2, t.d3, t.d4, t.d5) }

func (t tuple5[A, B, C, D, E]) SelectExprs() []string { return Exprs(t.d1, t.d2, t.d3, t.d4, t.d5) }

func (t tuple5[A, B, C, D, E]) FromRow(row []rdb.Value) (Tuple5[A, B, C, D, E], error) {
	var out Tuple5[A, B, C, D, E]
	var err error
	c := NewCursor(row, nil)
	if out.V1, err = NextNested(c, t.d1); err != nil {
		return Tuple5[A, B, C, D, E]{}, err
	}
	if out.V2, err = NextNested(c, t.d2); err != nil {
		return Tuple5[A, B, C, D, E]{}, err
	}
	if out.V3, err = NextNested(c, t.d3); err != nil {
		return Tuple5[A, B, C, D, E]{}, err
	}
	if out.V4, err = NextNested(c, t.d4); err != nil {
		return Tuple5[A, B, C, D, E]{}, err
	}
	if out.V5, err = NextNested(c, t.d5); err != nil {
		return Tuple5[A, B, C, D, E]{}, err
	}
	if err := c.Done(); err != nil {
		return Tuple5[A, B, C, D, E]{}, err
	}
	return out, nil
}

type Tuple6[A, B, C, D, E, F any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
	V6 F
}

// T6 组合 6 个记录描述
func T6[A, B, C, D, E, F any](d1 Descriptor[A], d2 Descriptor[B], d3 Descriptor[C], d4 Descriptor[D], d5 Descriptor[E], d6 Descriptor[F]) Descriptor[Tuple6[A, B, C, D, E, F]] {
	return tuple6[A, B, C, D, E, F]{d1, d2, d3, d4, d5, d6}
}

type tuple6[A, B, C, D, E, F any] struct {
	d1 Descriptor[A]
	d2 Descriptor[B]
	d3 Descriptor[C]
	d4 Descriptor[D]
	d5 Descriptor[E]
	d6 Descriptor[F]
}

func (t tuple6[A, B, C, D, E, F]) RequiredTables() []string { return Tables(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6) }

func (t tuple6[A, B, C, D, E, F]) RequiredJoins() []Join { return Joins(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6) }

func (t tuple6[A, B, C, D, E, F]) SelectExprs() []string { return Exprs(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6) }

func (t tuple6[A, B, C, D, E, F]) FromRow(row []rdb.Value) (Tuple6[A, B, C, D, E, F], error) {
	var out Tuple6[A, B, C, D, E, F]
	var err error
	c := NewCursor(row, nil)
	if out.V1, err = NextNested(c, t.d1); err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	if out.V2, err = NextNested(c, t.d2); err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	if out.V3, err = NextNested(c, t.d3); err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	if out.V4, err = NextNested(c, t.d4); err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	if out.V5, err = NextNested(c, t.d5); err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	if out.V6, err = NextNested(c, t.d6); err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	if err := c.Done(); err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	return out, nil
}

type Tuple7[A, B, C, D, E, F, G any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
	V6 F
	V7 G
}

// T7 组合 7 个记录描述
func T7[A, B, C, D, E, F, G any](d1 Descriptor[A], d2 Descriptor[B], d3 Descriptor[C], d4 Descriptor[D], d5 Descriptor[E], d6 Descriptor[F], d7 Descriptor[G]) Descriptor[Tuple7[A, B, C, D, E, F, G]] {
	return tuple7[A, B, C, D, E, F, G]{d1, d2, d3, d4, d5, d6, d7}
}

type tuple7[A, B, C, D, E, F, G any] struct {
	d1 Descriptor[A]
	d2 Descriptor[B]
	d3 Descriptor[C]
	d4 Descriptor[D]
	d5 Descriptor[E]
	d6 Descriptor[F]
	d7 Descriptor[G]
}

func (t tuple7[A, B, C, D, E, F, G]) RequiredTables() []string { return Tables(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7) }

func (t tuple7[A, B, C, D, E, F, G]) RequiredJoins() []Join { return Joins(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7) }

func (t tuple7[A, B, C, D, E, F, G]) SelectExprs() []string { return Exprs(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7) }

func (t tuple7[A, B, C, D, E, F, G]) FromRow(row []rdb.Value) (Tuple7[A, B, C, D, E, F, G], error) {
	var out Tuple7[A, B, C, D, E, F, G]
	var err error
	c := NewCursor(row, nil)
	if out.V1, err = NextNested(c, t.d1); err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	if out.V2, err = NextNested(c, t.d2); err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	if out.V3, err = NextNested(c, t.d3); err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	if out.V4, err = NextNested(c, t.d4); err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	if out.V5, err = NextNested(c, t.d5); err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	if out.V6, err = NextNested(c, t.d6); err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	if out.V7, err = NextNested(c, t.d7); err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	if err := c.Done(); err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	return out, nil
}

type Tuple8[A, B, C, D, E, F, G, H any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
	V6 F
	V7 G
	V8 H
}

// T8 组合 8 个记录描述
func T8[A, B, C, D, E, F, G, H any](d1 Descriptor[A], d2 Descriptor[B], d3 Descriptor[C], d4 Descriptor[D], d5 Descriptor[E], d6 Descriptor[F], d7 Descriptor[G], d8 Descriptor[H]) Descriptor[Tuple8[A, B, C, D, E, F, G, H]] {
	return tuple8[A, B, C, D, E, F, G, H]{d1, d2, d3, d4, d5, d6, d7, d8}
}

type tuple8[A, B, C, D, E, F, G, H any] struct {
	d1 Descriptor[A]
	d2 Descriptor[B]
	d3 Descriptor[C]
	d4 Descriptor[D]
	d5 Descriptor[E]
	d6 Descriptor[F]
	d7 Descriptor[G]
	d8 Descriptor[H]
}

func (t tuple8[A, B, C, D, E, F, G, H]) RequiredTables() []string { return Tables(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8) }

func (t tuple8[A, B, C, D, E, F, G, H]) RequiredJoins() []Join { return Joins(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8) }

func (t tuple8[A, B, C, D, E, F, G, H]) SelectExprs() []string { return Exprs(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8) }

func (t tuple8[A, B, C, D, E, F, G, H]) FromRow(row []rdb.Value) (Tuple8[A, B, C, D, E, F, G, H], error) {
	var out Tuple8[A, B, C, D, E, F, G, H]
	var err error
	c := NewCursor(row, nil)
	if out.V1, err = NextNested(c, t.d1); err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	if out.V2, err = NextNested(c, t.d2); err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	if out.V3, err = NextNested(c, t.d3); err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	if out.V4, err = NextNested(c, t.d4); err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	if out.V5, err = NextNested(c, t.d5); err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	if out.V6, err = NextNested(c, t.d6); err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	if out.V7, err = NextNested(c, t.d7); err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	if out.V8, err = NextNested(c, t.d8); err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	if err := c.Done(); err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	return out, nil
}

type Tuple9[A, B, C, D, E, F, G, H, I any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
	V6 F
	V7 G
	V8 H
	V9 I
}

// T9 组合 9 个记录描述
func T9[A, B, C, D, E, F, G, H, I any](d1 Descriptor[A], d2 Descriptor[B], d3 Descriptor[C], d4 Descriptor[D], d5 Descriptor[E], d6 Descriptor[F], d7 Descriptor[G], d8 Descriptor[H], d9 Descriptor[I]) Descriptor[Tuple9[A, B, C, D, E, F, G, H, I]] {
	return tuple9[A, B, C, D, E, F, G, H, I]{d1, d2, d3, d4, d5, d6, d7, d8, d9}
}

type tuple9[A, B, C, D, E, F, G, H, I any] struct {
	d1 Descriptor[A]
	d2 Descriptor[B]
	d3 Descriptor[C]
	d4 Descriptor[D]
	d5 Descriptor[E]
	d6 Descriptor[F]
	d7 Descriptor[G]
	d8 Descriptor[H]
	d9 Descriptor[I]
}

func (t tuple9[A, B, C, D, E, F, G, H, I]) RequiredTables() []string { return Tables(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8, t.d9) }

func (t tuple9[A, B, C, D, E, F, G, H, I]) RequiredJoins() []Join { return Joins(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8, t.d9) }

func (t tuple9[A, B, C, D, E, F, G, H, I]) SelectExprs() []string { return Exprs(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8, t.d9) }

func (t tuple9[A, B, C, D, E, F, G, H, I]) FromRow(row []rdb.Value) (Tuple9[A, B, C, D, E, F, G, H, I], error) {
	var out Tuple9[A, B, C, D, E, F, G, H, I]
	var err error
	c := NewCursor(row, nil)
	if out.V1, err = NextNested(c, t.d1); err != nil {
		return Tuple9[A, B, C, D, E, F, G, H, I]{}, err
	}
	if out.V2, err = NextNested(c, t.d2); err != nil {
		return Tuple9[A, B, C, D, E, F, G, H, I]{}, err
	}
	if out.V3, err = NextNested(c, t.d3); err != nil {
		return Tuple9[A, B, C, D, E, F, G, H, I]{}, err
	}
	if out.V4, err = NextNested(c, t.d4); err != nil {
		return Tuple9[A, B, C, D, E, F, G, H, I]{}, err
	}
	if out.V5, err = NextNested(c, t.d5); err != nil {
		return Tuple9[A, B, C, D, E, F, G, H, I]{}, err
	}
	if out.V6, err = NextNested(c, t.d6); err != nil {
		return Tuple9[A, B, C, D, E, F, G, H, I]{}, err
	}
	if out.V7, err = NextNested(c, t.d7); err != nil {
		return Tuple9[A, B, C, D, E, F, G, H, I]{}, err
	}
	if out.V8, err = NextNested(c, t.d8); err != nil {
		return Tuple9[A, B, C, D, E, F, G, H, I]{}, err
	}
	if out.V9, err = NextNested(c, t.d9); err != nil {
		return Tuple9[A, B, C, D, E, F, G, H, I]{}, err
	}
	if err := c.Done(); err != nil {
		return Tuple9[A, B, C, D, E, F, G, H, I]{}, err
	}
	return out, nil
}

type Tuple10[A, B, C, D, E, F, G, H, I, J any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
	V6 F
	V7 G
	V8 H
	V9 I
	V10 J
}

// T10 组合 10 个记录描述
func T10[A, B, C, D, E, F, G, H, I, J any](d1 Descriptor[A], d2 Descriptor[B], d3 Descriptor[C], d4 Descriptor[D], d5 Descriptor[E], d6 Descriptor[F], d7 Descriptor[G], d8 Descriptor[H], d9 Descriptor[I], d10 Descriptor[J]) Descriptor[Tuple10[A, B, C, D, E, F, G, H, I, J]] {
	return tuple10[A, B, C, D, E, F, G, H, I, J]{d1, d2, d3, d4, d5, d6, d7, d8, d9, d10}
}

type tuple10[A, B, C, D, E, F, G, H, I, J any] struct {
	d1 Descriptor[A]
	d2 Descriptor[B]
	d3 Descriptor[C]
	d4 Descriptor[D]
	d5 Descriptor[E]
	d6 Descriptor[F]
	d7 Descriptor[G]
	d8 Descriptor[H]
	d9 Descriptor[I]
	d10 Descriptor[J]
}

func (t tuple10[A, B, C, D, E, F, G, H, I, J]) RequiredTables() []string { return Tables(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8, t.d9, t.d10) }

func (t tuple10[A, B, C, D, E, F, G, H, I, J]) RequiredJoins() []Join { return Joins(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8, t.d9, t.d10) }

func (t tuple10[A, B, C, D, E, F, G, H, I, J]) SelectExprs() []string { return Exprs(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8, t.d9, t.d10) }

func (t tuple10[A, B, C, D, E, F, G, H, I, J]) FromRow(row []rdb.Value) (Tuple10[A, B, C, D, E, F, G, H, I, J], error) {
	var out Tuple10[A, B, C, D, E, F, G, H, I, J]
	var err error
	c := NewCursor(row, nil)
	if out.V1, err = NextNested(c, t.d1); err != nil {
		return Tuple10[A, B, C, D, E, F, G, H, I, J]{}, err
	}
	if out.V2, err = NextNested(c, t.d2); err != nil {
		return Tuple10[A, B, C, D, E, F, G, H, I, J]{}, err
	}
	if out.V3, err = NextNested(c, t.d3); err != nil {
		return Tuple10[A, B, C, D, E, F, G, H, I, J]{}, err
	}
	if out.V4, err = NextNested(c, t.d4); err != nil {
		return Tuple10[A, B, C, D, E, F, G, H, I, J]{}, err
	}
	if out.V5, err = NextNested(c, t.d5); err != nil {
		return Tuple10[A, B, C, D, E, F, G, H, I, J]{}, err
	}
	if out.V6, err = NextNested(c, t.d6); err != nil {
		return Tuple10[A, B, C, D, E, F, G, H, I, J]{}, err
	}
	if out.V7, err = NextNested(c, t.d7); err != nil {
		return Tuple10[A, B, C, D, E, F, G, H, I, J]{}, err
	}
	if out.V8, err = NextNested(c, t.d8); err != nil {
		return Tuple10[A, B, C, D, E, F, G, H, I, J]{}, err
	}
	if out.V9, err = NextNested(c, t.d9); err != nil {
		return Tuple10[A, B, C, D, E, F, G, H, I, J]{}, err
	}
	if out.V10, err = NextNested(c, t.d10); err != nil {
		return Tuple10[A, B, C, D, E, F, G, H, I, J]{}, err
	}
	if err := c.Done(); err != nil {
		return Tuple10[A, B, C, D, E, F, G, H, I, J]{}, err
	}
	return out, nil
}

type Tuple11[A, B, C, D, E, F, G, H, I, J, K any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
	V6 F
	V7 G
	V8 H
	V9 I
	V10 J
	V11 K
}

// T11 组合 11 个记录描述
func T11[A, B, C, D, E, F, G, H, I, J, K any](d1 Descriptor[A], d2 Descriptor[B], d3 Descriptor[C], d4 Descriptor[D], d5 Descriptor[E], d6 Descriptor[F], d7 Descriptor[G], d8 Descriptor[H], d9 Descriptor[I], d10 Descriptor[J], d11 Descriptor[K]) Descriptor[Tuple11[A, B, C, D, E, F, G, H, I, J, K]] {
	return tuple11[A, B, C, D, E, F, G, H, I, J, K]{d1, d2, d3, d4, d5, d6, d7, d8, d9, d10, d11}
}

type tuple11[A, B, C, D, E, F, G, H, I, J, K any] struct {
	d1 Descriptor[A]
	d2 Descriptor[B]
	d3 Descriptor[C]
	d4 Descriptor[D]
	d5 Descriptor[E]
	d6 Descriptor[F]
	d7 Descriptor[G]
	d8 Descriptor[H]
	d9 Descriptor[I]
	d10 Descriptor[J]
	d11 Descriptor[K]
}

func (t tuple11[A, B, C, D, E, F, G, H, I, J, K]) RequiredTables() []string { return Tables(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8, t.d9, t.d10, t.d11) }

func (t tuple11[A, B, C, D, E, F, G, H, I, J, K]) RequiredJoins() []Join { return Joins(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8, t.d9, t.d10, t.d11) }

func (t tuple11[A, B, C, D, E, F, G, H, I, J, K]) SelectExprs() []string { return Exprs(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8, t.d9, t.d10, t.d11) }

func (t tuple11[A, B, C, D, E, F, G, H, I, J, K]) FromRow(row []rdb.Value) (Tuple11[A, B, C, D, E, F, G, H, I, J, K], error) {
	var out Tuple11[A, B, C, D, E, F, G, H, I, J, K]
	var err error
	c := NewCursor(row, nil)
	if out.V1, err = NextNested(c, t.d1); err != nil {
		return Tuple11[A, B, C, D, E, F, G, H, I, J, K]{}, err
	}
	if out.V2, err = NextNested(c, t.d2); err != nil {
		return Tuple11[A, B, C, D, E, F, G, H, I, J, K]{}, err
	}
	if out.V3, err = NextNested(c, t.d3); err != nil {
		return Tuple11[A, B, C, D, E, F, G, H, I, J, K]{}, err
	}
	if out.V4, err = NextNested(c, t.d4); err != nil {
		return Tuple11[A, B, C, D, E, F, G, H, I, J, K]{}, err
	}
	if out.V5, err = NextNested(c, t.d5); err != nil {
		return Tuple11[A, B, C, D, E, F, G, H, I, J, K]{}, err
	}
	if out.V6, err = NextNested(c, t.d6); err != nil {
		return Tuple11[A, B, C, D, E, F, G, H, I, J, K]{}, err
	}
	if out.V7, err = NextNested(c, t.d7); err != nil {
		return Tuple11[A, B, C, D, E, F, G, H, I, J, K]{}, err
	}
	if out.V8, err = NextNested(c, t.d8); err != nil {
		return Tuple11[A, B, C, D, E, F, G, H, I, J, K]{}, err
	}
	if out.V9, err = NextNested(c, t.d9); err != nil {
		return Tuple11[A, B, C, D, E, F, G, H, I, J, K]{}, err
	}
	if out.V10, err = NextNested(c, t.d10); err != nil {
		return Tuple11[A, B, C, D, E, F, G, H, I, J, K]{}, err
	}
	if out.V11, err = NextNested(c, t.d11); err != nil {
		return Tuple11[A, B, C, D, E, F, G, H, I, J, K]{}, err
	}
	if err := c.Done(); err != nil {
		return Tuple11[A, B, C, D, E, F, G, H, I, J, K]{}, err
	}
	return out, nil
}

type Tuple12[A, B, C, D, E, F, G, H, I, J, K, L any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
	V6 F
	V7 G
	V8 H
	V9 I
	V10 J
	V11 K
	V12 L
}

// T12 组合 12 个记录描述
func T12[A, B, C, D, E, F, G, H, I, J, K, L any](d1 Descriptor[A], d2 Descriptor[B], d3 Descriptor[C], d4 Descriptor[D], d5 Descriptor[E], d6 Descriptor[F], d7 Descriptor[G], d8 Descriptor[H], d9 Descriptor[I], d10 Descriptor[J], d11 Descriptor[K], d12 Descriptor[L]) Descriptor[Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]] {
	return tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{d1, d2, d3, d4, d5, d6, d7, d8, d9, d10, d11, d12}
}

type tuple12[A, B, C, D, E, F, G, H, I, J, K, L any] struct {
	d1 Descriptor[A]
	d2 Descriptor[B]
	d3 Descriptor[C]
	d4 Descriptor[D]
	d5 Descriptor[E]
	d6 Descriptor[F]
	d7 Descriptor[G]
	d8 Descriptor[H]
	d9 Descriptor[I]
	d10 Descriptor[J]
	d11 Descriptor[K]
	d12 Descriptor[L]
}

func (t tuple12[A, B, C, D, E, F, G, H, I, J, K, L]) RequiredTables() []string { return Tables(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8, t.d9, t.d10, t.d11, t.d12) }

func (t tuple12[A, B, C, D, E, F, G, H, I, J, K, L]) RequiredJoins() []Join { return Joins(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8, t.d9, t.d10, t.d11, t.d12) }

func (t tuple12[A, B, C, D, E, F, G, H, I, J, K, L]) SelectExprs() []string { return Exprs(t.d1, t.d2, t.d3, t.d4, t.d5, t.d6, t.d7, t.d8, t.d9, t.d10, t.d11, t.d12) }

func (t tuple12[A, B, C, D, E, F, G, H, I, J, K, L]) FromRow(row []rdb.Value) (Tuple12[A, B, C, D, E, F, G, H, I, J, K, L], error) {
	var out Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]
	var err error
	c := NewCursor(row, nil)
	if out.V1, err = NextNested(c, t.d1); err != nil {
		return Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{}, err
	}
	if out.V2, err = NextNested(c, t.d2); err != nil {
		return Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{}, err
	}
	if out.V3, err = NextNested(c, t.d3); err != nil {
		return Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{}, err
	}
	if out.V4, err = NextNested(c, t.d4); err != nil {
		return Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{}, err
	}
	if out.V5, err = NextNested(c, t.d5); err != nil {
		return Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{}, err
	}
	if out.V6, err = NextNested(c, t.d6); err != nil {
		return Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{}, err
	}
	if out.V7, err = NextNested(c, t.d7); err != nil {
		return Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{}, err
	}
	if out.V8, err = NextNested(c, t.d8); err != nil {
		return Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{}, err
	}
	if out.V9, err = NextNested(c, t.d9); err != nil {
		return Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{}, err
	}
	if out.V10, err = NextNested(c, t.d10); err != nil {
		return Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{}, err
	}
	if out.V11, err = NextNested(c, t.d11); err != nil {
		return Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{}, err
	}
	if out.V12, err = NextNested(c, t.d12); err != nil {
		return Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{}, err
	}
	if err := c.Done(); err != nil {
		return Tuple12[A, B, C, D, E, F, G, H, I, J, K, L]{}, err
	}
	return out, nil
}
