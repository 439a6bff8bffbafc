package reconstruct

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/hatlonely/busliste/rdb"
)

// 手写的描述按记录类型注册，派生嵌套字段时优先使用
var registry sync.Map // map[reflect.Type]Descriptor[any]

// Register 注册类型 T 的描述，重复注册返回错误
func Register[T any](d Descriptor[T]) error {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if _, loaded := registry.LoadOrStore(rt, Erase(d)); loaded {
		return fmt.Errorf("descriptor for type %s already registered", rt)
	}
	return nil
}

func MustRegister[T any](d Descriptor[T]) {
	if err := Register(d); err != nil {
		panic(err)
	}
}

// Lookup 查找已注册的描述，FromRow 返回的值类型为 rt
func Lookup(rt reflect.Type) (Descriptor[any], bool) {
	d, ok := registry.Load(rt)
	if !ok {
		return nil, false
	}
	return d.(Descriptor[any]), true
}

// Erase 擦除描述的类型参数
func Erase[T any](d Descriptor[T]) Descriptor[any] {
	return erased[T]{d: d}
}

type erased[T any] struct {
	d Descriptor[T]
}

func (e erased[T]) RequiredTables() []string { return e.d.RequiredTables() }

func (e erased[T]) RequiredJoins() []Join { return e.d.RequiredJoins() }

func (e erased[T]) SelectExprs() []string { return e.d.SelectExprs() }

func (e erased[T]) FromRow(row []rdb.Value) (any, error) {
	v, err := e.d.FromRow(row)
	if err != nil {
		return nil, err
	}
	return v, nil
}
