package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrKeyNotFound     = errors.New("key not found")
	ErrConditionFailed = errors.New("condition failed")
)

// setOptions 用于设置 KV 数据时的选项
type setOptions struct {
	Expiration time.Duration
	IfNotExist bool
}

type setOption func(*setOptions)

func WithExpiration(expiration time.Duration) setOption {
	return func(options *setOptions) {
		options.Expiration = expiration
	}
}

func WithIfNotExist() setOption {
	return func(options *setOptions) {
		options.IfNotExist = true
	}
}

type Store[K, V any] interface {
	// Set 设置键值对，WithIfNotExist 时键存在则返回 ErrConditionFailed
	Set(ctx context.Context, key K, value V, opts ...setOption) error
	// Get 获取键对应的值，键不存在时返回 ErrKeyNotFound
	Get(ctx context.Context, key K) (V, error)
	// Del 删除键，键不存在时也返回成功
	Del(ctx context.Context, key K) error
	Close() error
}

type Options struct {
	// Type freecache 或 map
	Type      string                `cfg:"type" def:"freecache" validate:"omitempty,oneof=freecache map"`
	FreeCache FreeCacheStoreOptions `cfg:"freecache"`
}

func NewStoreWithOptions[K comparable, V any](options *Options) (Store[K, V], error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}

	switch options.Type {
	case "", "freecache":
		s, err := NewFreeCacheStoreWithOptions[K, V](&options.FreeCache)
		if err != nil {
			return nil, errors.WithMessage(err, "NewFreeCacheStoreWithOptions failed")
		}
		return s, nil
	case "map":
		return NewMapStore[K, V](), nil
	default:
		return nil, errors.Errorf("unsupported store type: %s", options.Type)
	}
}
