package serializer

import (
	"github.com/pkg/errors"
)

// Serializer F 与 T 之间的双向转换
type Serializer[F, T any] interface {
	Serialize(from F) (T, error)
	Deserialize(to T) (F, error)
}

type Options struct {
	// Format msgpack 或 json
	Format string `cfg:"format" def:"msgpack" validate:"omitempty,oneof=msgpack json"`
}

// NewByteSerializerWithOptions options 为 nil 时使用 msgpack
func NewByteSerializerWithOptions[T any](options *Options) (Serializer[T, []byte], error) {
	format := "msgpack"
	if options != nil && options.Format != "" {
		format = options.Format
	}

	switch format {
	case "msgpack":
		return NewMsgPackSerializer[T](), nil
	case "json":
		return NewJSONSerializer[T](), nil
	default:
		return nil, errors.Errorf("unsupported serializer format: %s", format)
	}
}
