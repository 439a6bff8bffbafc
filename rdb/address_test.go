package rdb

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAddress(t *testing.T) {
	Convey("Address", t, func() {
		Convey("解析合法地址", func() {
			addr, err := ParseAddress("alice.beta@example.com")
			So(err, ShouldBeNil)
			So(addr.User(), ShouldEqual, "alice.beta")
			So(addr.Domain(), ShouldEqual, "example.com")
			So(addr.String(), ShouldEqual, "alice.beta@example.com")
		})

		Convey("非法地址返回专用的解析错误", func() {
			for _, s := range []string{"", "no-at-sign", "two@@example.com", "@example.com"} {
				_, err := ParseAddress(s)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ErrAddressParse), ShouldBeTrue)
			}
		})

		Convey("从单元格解码", func() {
			var addr Address
			So(Decode(Text("bob@example.com"), &addr), ShouldBeNil)
			So(addr, ShouldResemble, MustParseAddress("bob@example.com"))

			err := Decode(Text("definitely not an address"), &addr)
			So(errors.Is(err, ErrConversion), ShouldBeTrue)
			So(errors.Is(err, ErrAddressParse), ShouldBeTrue)

			err = Decode(Integer(3), &addr)
			So(errors.Is(err, ErrConversion), ShouldBeTrue)

			err = Decode(Null(), &addr)
			So(errors.Is(err, ErrConversion), ShouldBeTrue)
		})

		Convey("可空地址", func() {
			var addr *Address
			So(Decode(Null(), &addr), ShouldBeNil)
			So(addr, ShouldBeNil)

			So(Decode(Text("carol@example.com"), &addr), ShouldBeNil)
			So(addr.String(), ShouldEqual, "carol@example.com")

			v, err := Encode(addr)
			So(err, ShouldBeNil)
			So(v.Equal(Text("carol@example.com")), ShouldBeTrue)

			addr = nil
			v, err = Encode(addr)
			So(err, ShouldBeNil)
			So(v.IsNull(), ShouldBeTrue)
		})

		Convey("零值地址不能编码", func() {
			_, err := Encode(Address{})
			So(errors.Is(err, ErrAddressParse), ShouldBeTrue)
		})

		Convey("文本编解码", func() {
			var addr Address
			So(addr.UnmarshalText([]byte("dave@example.com")), ShouldBeNil)
			text, err := addr.MarshalText()
			So(err, ShouldBeNil)
			So(string(text), ShouldEqual, "dave@example.com")
		})
	})
}
