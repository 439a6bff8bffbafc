package store

import (
	"context"
	"time"

	"github.com/coocood/freecache"
	"github.com/hatlonely/busliste/kv/serializer"
	"github.com/pkg/errors"
)

type FreeCacheStoreOptions struct {
	// Size 缓存字节数，freecache 最小 512KB
	Size          int                `cfg:"size" def:"1048576"`
	DefaultTTL    time.Duration      `cfg:"defaultTTL" def:"5m"`
	KeySerializer serializer.Options `cfg:"keySerializer"`
	ValSerializer serializer.Options `cfg:"valSerializer"`
}

type FreeCacheStore[K, V any] struct {
	cache           *freecache.Cache
	defaultTTL      time.Duration
	keySerializer   serializer.Serializer[K, []byte]
	valueSerializer serializer.Serializer[V, []byte]
}

func NewFreeCacheStoreWithOptions[K, V any](options *FreeCacheStoreOptions) (*FreeCacheStore[K, V], error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}

	keySerializer, err := serializer.NewByteSerializerWithOptions[K](&options.KeySerializer)
	if err != nil {
		return nil, errors.WithMessage(err, "key serializer")
	}

	valueSerializer, err := serializer.NewByteSerializerWithOptions[V](&options.ValSerializer)
	if err != nil {
		return nil, errors.WithMessage(err, "value serializer")
	}

	return &FreeCacheStore[K, V]{
		cache:           freecache.NewCache(options.Size),
		defaultTTL:      options.DefaultTTL,
		keySerializer:   keySerializer,
		valueSerializer: valueSerializer,
	}, nil
}

func (s *FreeCacheStore[K, V]) Set(ctx context.Context, key K, value V, opts ...setOption) error {
	options := &setOptions{}
	for _, opt := range opts {
		opt(options)
	}

	keyBytes, err := s.keySerializer.Serialize(key)
	if err != nil {
		return err
	}

	valueBytes, err := s.valueSerializer.Serialize(value)
	if err != nil {
		return err
	}

	if options.IfNotExist {
		if _, err := s.cache.Get(keyBytes); err == nil {
			return ErrConditionFailed
		}
	}

	expiration := options.Expiration
	if expiration == 0 && s.defaultTTL > 0 {
		expiration = s.defaultTTL
	}
	if err := s.cache.Set(keyBytes, valueBytes, int(expiration.Seconds())); err != nil {
		return errors.Wrap(err, "freecache.Set failed")
	}
	return nil
}

func (s *FreeCacheStore[K, V]) Get(ctx context.Context, key K) (V, error) {
	var zero V

	keyBytes, err := s.keySerializer.Serialize(key)
	if err != nil {
		return zero, err
	}

	valueBytes, err := s.cache.Get(keyBytes)
	if errors.Is(err, freecache.ErrNotFound) {
		return zero, ErrKeyNotFound
	}
	if err != nil {
		return zero, errors.Wrap(err, "freecache.Get failed")
	}

	return s.valueSerializer.Deserialize(valueBytes)
}

func (s *FreeCacheStore[K, V]) Del(ctx context.Context, key K) error {
	keyBytes, err := s.keySerializer.Serialize(key)
	if err != nil {
		return err
	}

	s.cache.Del(keyBytes)
	return nil
}

// Clear 清空缓存，之后仍可使用
func (s *FreeCacheStore[K, V]) Clear() {
	s.cache.Clear()
}

func (s *FreeCacheStore[K, V]) Close() error {
	s.cache.Clear()
	return nil
}
