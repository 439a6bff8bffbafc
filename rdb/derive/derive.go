// Package derive 通过反射和 struct tag 生成记录描述
//
//	type Drive struct {
//		_        struct{} `sql:"table=drive"`
//		ID       int64    `sql:"column=drive_id"`
//		Date     time.Time `sql:"column=drivedate"`
//		Deadline *time.Time
//	}
//
//	var driveDescriptor = derive.MustFor[Drive]()
//
// 每个类型的计划只计算一次。
package derive

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/hatlonely/busliste/rdb"
	"github.com/hatlonely/busliste/rdb/reconstruct"
	"github.com/pkg/errors"
)

type tableNamer interface {
	TableName() string
}

var plans sync.Map // map[reflect.Type]*plan

// For 返回类型 T 的描述，T 的定义不合法时返回 ErrDefinition
func For[T any]() (reconstruct.Descriptor[T], error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	p, err := planOf(rt, nil)
	if err != nil {
		return nil, err
	}
	return typed[T]{p: p}, nil
}

func MustFor[T any]() reconstruct.Descriptor[T] {
	d, err := For[T]()
	if err != nil {
		panic(err)
	}
	return d
}

type typed[T any] struct {
	p *plan
}

func (d typed[T]) RequiredTables() []string { return d.p.RequiredTables() }

func (d typed[T]) RequiredJoins() []reconstruct.Join { return d.p.RequiredJoins() }

func (d typed[T]) SelectExprs() []string { return d.p.SelectExprs() }

func (d typed[T]) FromRow(row []rdb.Value) (T, error) {
	var v T
	rv := reflect.ValueOf(&v).Elem()
	if err := d.p.fill(rv, row); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

type fieldPlan struct {
	name  string
	index []int

	// nested 为空表示基本字段
	nested  reconstruct.Descriptor[any]
	pointer bool
	width   int
}

// plan 一个记录类型的派生结果
type plan struct {
	rt     reflect.Type
	table  string
	tables []string
	joins  []reconstruct.Join
	exprs  []string
	fields []fieldPlan
}

func (p *plan) RequiredTables() []string { return append([]string(nil), p.tables...) }

func (p *plan) RequiredJoins() []reconstruct.Join { return append([]reconstruct.Join(nil), p.joins...) }

func (p *plan) SelectExprs() []string { return append([]string(nil), p.exprs...) }

// FromRow 作为嵌套字段的描述使用
func (p *plan) FromRow(row []rdb.Value) (any, error) {
	rv := reflect.New(p.rt).Elem()
	if err := p.fill(rv, row); err != nil {
		return nil, err
	}
	return rv.Interface(), nil
}

func (p *plan) fill(rv reflect.Value, row []rdb.Value) error {
	cur := reconstruct.NewCursor(row, p.exprs)
	for _, f := range p.fields {
		fv := rv.FieldByIndex(f.index)
		if f.nested == nil {
			if err := cur.Next(fv.Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		pos := cur.Pos()
		values, err := cur.Take(f.width)
		if err != nil {
			return err
		}
		if f.pointer && f.width > 0 && allNull(values) {
			fv.Set(reflect.Zero(fv.Type()))
			continue
		}
		v, err := f.nested.FromRow(values)
		if err != nil {
			return rdb.ShiftColumn(err, pos)
		}
		nv := reflect.ValueOf(v)
		if f.pointer {
			ptr := reflect.New(fv.Type().Elem())
			ptr.Elem().Set(nv)
			nv = ptr
		}
		fv.Set(nv)
	}
	return cur.Done()
}

func allNull(values []rdb.Value) bool {
	for _, v := range values {
		if !v.IsNull() {
			return false
		}
	}
	return true
}

func planOf(rt reflect.Type, visiting []reflect.Type) (*plan, error) {
	if p, ok := plans.Load(rt); ok {
		return p.(*plan), nil
	}
	for i, t := range visiting {
		if t == rt {
			return nil, definitionError(rt, "", errors.Errorf("cycle among complex fields: %s", cyclePath(append(visiting[i:], rt))))
		}
	}

	p, err := build(rt, append(visiting, rt))
	if err != nil {
		return nil, err
	}
	actual, _ := plans.LoadOrStore(rt, p)
	return actual.(*plan), nil
}

func build(rt reflect.Type, visiting []reflect.Type) (*plan, error) {
	if rt.Kind() != reflect.Struct {
		return nil, definitionError(rt, "", errors.Errorf("record type must be a struct, got %s", rt.Kind()))
	}

	table, err := tableName(rt)
	if err != nil {
		return nil, err
	}

	p := &plan{rt: rt, table: table, tables: []string{table}}
	var callerCondition string

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.Name == "_" {
			continue
		}

		raw, tagged := field.Tag.Lookup(tagName)
		tag, err := parseTag(raw)
		if err != nil {
			return nil, definitionError(rt, field.Name, err)
		}
		if tag.ignore {
			continue
		}
		if !field.IsExported() {
			if tagged {
				return nil, definitionError(rt, field.Name, errors.New("tagged field must be exported"))
			}
			continue
		}
		if tag.has(keyTable) {
			return nil, definitionError(rt, field.Name, errors.Errorf("%q is only allowed on the blank field", keyTable))
		}

		if !tag.complex {
			if !rdb.IsScalar(field.Type) {
				return nil, definitionError(rt, field.Name, errors.Errorf("field type %s is not a column type, tag it %q or %q", field.Type, keyComplex, "-"))
			}
			expr := tag.expr
			if expr == "" {
				column := tag.column
				if column == "" {
					column = snakeCase(field.Name)
				}
				expr = table + "." + column
			}
			p.exprs = append(p.exprs, expr)
			p.fields = append(p.fields, fieldPlan{name: field.Name, index: field.Index, width: 1})
			continue
		}

		if tag.conditionInJoin {
			if callerCondition != "" {
				return nil, definitionError(rt, field.Name, errors.Errorf("%q already declared on field %s", keyConditionInJoin, callerCondition))
			}
			callerCondition = field.Name
		}

		fp, nested, err := buildComplex(rt, field, visiting)
		if err != nil {
			return nil, err
		}

		nestedTables := nested.RequiredTables()
		if tag.joinedOn != "" || tag.conditionInJoin {
			if len(nestedTables) == 0 {
				return nil, definitionError(rt, field.Name, errors.New("joined field type requires at least one table"))
			}
			clause := reconstruct.On(tag.joinedOn)
			if tag.conditionInJoin {
				clause = reconstruct.UseCallerCondition()
			}
			p.joins = append(p.joins, reconstruct.Join{Table: nestedTables[0], Clause: clause})
		}
		// join 的表由执行器从 FROM 中去掉，嵌套类型的其余表仍需要出现在 FROM 中
		p.tables = append(p.tables, nestedTables...)
		p.joins = append(p.joins, nested.RequiredJoins()...)
		p.exprs = append(p.exprs, nested.SelectExprs()...)
		p.fields = append(p.fields, fp)
	}

	return p, nil
}

func buildComplex(rt reflect.Type, field reflect.StructField, visiting []reflect.Type) (fieldPlan, reconstruct.Descriptor[any], error) {
	ft := field.Type
	pointer := false
	if ft.Kind() == reflect.Ptr {
		ft = ft.Elem()
		pointer = true
	}

	var nested reconstruct.Descriptor[any]
	if d, ok := reconstruct.Lookup(ft); ok {
		nested = d
	} else {
		if ft.Kind() != reflect.Struct {
			return fieldPlan{}, nil, definitionError(rt, field.Name, errors.Errorf("complex field type %s is not a struct", ft))
		}
		p, err := planOf(ft, visiting)
		if err != nil {
			return fieldPlan{}, nil, err
		}
		nested = p
	}

	return fieldPlan{
		name:    field.Name,
		index:   field.Index,
		nested:  nested,
		pointer: pointer,
		width:   reconstruct.Width(nested),
	}, nested, nil
}

// tableName TableName 方法优先，其次是空白字段上的 table，默认为小写类型名
func tableName(rt reflect.Type) (string, error) {
	var fromTag string
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.Name != "_" {
			continue
		}
		raw, ok := field.Tag.Lookup(tagName)
		if !ok {
			continue
		}
		tag, err := parseTag(raw)
		if err != nil {
			return "", definitionError(rt, "_", err)
		}
		for key := range tag.seen {
			if key != keyTable {
				return "", definitionError(rt, "_", errors.Errorf("only %q is allowed on the blank field, got %q", keyTable, key))
			}
		}
		if fromTag != "" && tag.table != "" {
			return "", definitionError(rt, "_", errors.Errorf("%q declared more than once", keyTable))
		}
		fromTag = tag.table
	}

	if namer, ok := reflect.New(rt).Interface().(tableNamer); ok {
		if name := namer.TableName(); name != "" {
			return name, nil
		}
	}
	if fromTag != "" {
		return fromTag, nil
	}
	if rt.Name() == "" {
		return "", definitionError(rt, "", errors.New("cannot infer table name of an unnamed type"))
	}
	return strings.ToLower(rt.Name()), nil
}

func definitionError(rt reflect.Type, field string, cause error) error {
	while := fmt.Sprintf("deriving %s", rt)
	if field != "" {
		while += "." + field
	}
	return rdb.ErrDefinition.WithWhile(while).Because(cause)
}

func cyclePath(types []reflect.Type) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}
	return strings.Join(names, " -> ")
}
