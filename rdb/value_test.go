package rdb

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vmihailenco/msgpack/v5"
)

func TestValue(t *testing.T) {
	Convey("Value", t, func() {
		Convey("访问器只在类型匹配时返回 ok", func() {
			i, ok := Integer(42).Integer()
			So(ok, ShouldBeTrue)
			So(i, ShouldEqual, 42)

			_, ok = Integer(42).Text()
			So(ok, ShouldBeFalse)

			s, ok := Text("hello").Text()
			So(ok, ShouldBeTrue)
			So(s, ShouldEqual, "hello")

			So(Null().IsNull(), ShouldBeTrue)
			So(Value{}.IsNull(), ShouldBeTrue)
		})

		Convey("String 的展示规则", func() {
			So(Null().String(), ShouldEqual, "")
			So(Integer(-7).String(), ShouldEqual, "-7")
			So(Real(1.5).String(), ShouldEqual, "1.5")
			So(Text("abc").String(), ShouldEqual, "abc")
			So(Blob([]byte("abc")).String(), ShouldEqual, "abc")
			So(Blob([]byte{'a', 0xff, 'b'}).String(), ShouldEqual, "a�b")
		})

		Convey("Equal 同时比较类型和内容", func() {
			So(Integer(1).Equal(Integer(1)), ShouldBeTrue)
			So(Integer(1).Equal(Real(1)), ShouldBeFalse)
			So(Blob([]byte("x")).Equal(Blob([]byte("x"))), ShouldBeTrue)
			So(Text("x").Equal(Blob([]byte("x"))), ShouldBeFalse)
			So(Null().Equal(Null()), ShouldBeTrue)
		})

		Convey("实现 driver.Valuer", func() {
			v, err := Text("x").Value()
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "x")

			v, err = Null().Value()
			So(err, ShouldBeNil)
			So(v, ShouldBeNil)

			v, err = Integer(3).Value()
			So(err, ShouldBeNil)
			So(v, ShouldEqual, int64(3))
		})
	})
}

func TestFromDriver(t *testing.T) {
	Convey("FromDriver", t, func() {
		Convey("常见驱动类型", func() {
			v, err := FromDriver(nil)
			So(err, ShouldBeNil)
			So(v.Kind(), ShouldEqual, KindNull)

			v, err = FromDriver(int64(5))
			So(err, ShouldBeNil)
			So(v.Equal(Integer(5)), ShouldBeTrue)

			v, err = FromDriver(true)
			So(err, ShouldBeNil)
			So(v.Equal(Integer(1)), ShouldBeTrue)

			v, err = FromDriver(2.5)
			So(err, ShouldBeNil)
			So(v.Equal(Real(2.5)), ShouldBeTrue)

			v, err = FromDriver("s")
			So(err, ShouldBeNil)
			So(v.Equal(Text("s")), ShouldBeTrue)
		})

		Convey("[]byte 会被拷贝", func() {
			buf := []byte("abc")
			v, err := FromDriver(buf)
			So(err, ShouldBeNil)
			buf[0] = 'x'
			b, ok := v.Blob()
			So(ok, ShouldBeTrue)
			So(string(b), ShouldEqual, "abc")
		})

		Convey("time.Time 转换为 UTC 文本", func() {
			loc := time.FixedZone("CET", 3600)
			v, err := FromDriver(time.Date(2022, 12, 14, 21, 0, 0, 0, loc))
			So(err, ShouldBeNil)
			So(v.Equal(Text("2022-12-14 20:00:00Z")), ShouldBeTrue)
		})

		Convey("不支持的类型返回转换错误", func() {
			_, err := FromDriver(struct{}{})
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrConversion), ShouldBeTrue)
		})
	})
}

func TestValueMsgpack(t *testing.T) {
	Convey("Value 的 msgpack 编码", t, func() {
		for _, v := range []Value{Null(), Integer(-3), Real(0.25), Text("login"), Blob([]byte{1, 2})} {
			buf, err := msgpack.Marshal(v)
			So(err, ShouldBeNil)

			var got Value
			So(msgpack.Unmarshal(buf, &got), ShouldBeNil)
			So(got.Equal(v), ShouldBeTrue)
		}
	})
}
