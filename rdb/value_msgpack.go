package rdb

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

var _ msgpack.CustomEncoder = Value{}
var _ msgpack.CustomDecoder = (*Value)(nil)

// EncodeMsgpack 编码为 [kind, payload] 两元素数组
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeInt(int64(v.kind)); err != nil {
		return err
	}
	switch v.kind {
	case KindInteger:
		return enc.EncodeInt(v.i)
	case KindReal:
		return enc.EncodeFloat64(v.f)
	case KindText:
		return enc.EncodeString(v.s)
	case KindBlob:
		return enc.EncodeBytes(v.b)
	}
	return enc.EncodeNil()
}

func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 2 {
		return errors.Errorf("msgpack value: expected 2 elements, got %d", n)
	}
	kind, err := dec.DecodeInt64()
	if err != nil {
		return err
	}

	switch Kind(kind) {
	case KindNull:
		*v = Null()
		return dec.DecodeNil()
	case KindInteger:
		i, err := dec.DecodeInt64()
		*v = Integer(i)
		return err
	case KindReal:
		f, err := dec.DecodeFloat64()
		*v = Real(f)
		return err
	case KindText:
		s, err := dec.DecodeString()
		*v = Text(s)
		return err
	case KindBlob:
		b, err := dec.DecodeBytes()
		*v = Blob(b)
		return err
	}
	return errors.Errorf("msgpack value: unknown kind %d", kind)
}
