package rdb

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var ErrAddressParse = errors.New("invalid email address")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func addressValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Address 邮箱地址，以文本形式存储
type Address struct {
	user   string
	domain string
}

// ParseAddress 解析并校验邮箱地址
func ParseAddress(s string) (Address, error) {
	if err := addressValidator().Var(s, "required,email"); err != nil {
		return Address{}, errors.Wrapf(ErrAddressParse, "%q", s)
	}
	at := strings.LastIndexByte(s, '@')
	return Address{user: s[:at], domain: s[at+1:]}, nil
}

func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

func (a Address) User() string {
	return a.user
}

func (a Address) Domain() string {
	return a.domain
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) String() string {
	if a.IsZero() {
		return ""
	}
	return a.user + "@" + a.domain
}

func (a *Address) DecodeValue(v Value) error {
	s, err := decodeText(v)
	if err != nil {
		return NewConversionError("email address", v.Kind().String(), err)
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return NewConversionError("email address", v.Kind().String(), err)
	}
	*a = addr
	return nil
}

func (a Address) EncodeValue() (Value, error) {
	if a.IsZero() {
		return Value{}, NewConversionError("text", "email address", errors.Wrap(ErrAddressParse, "empty address"))
	}
	return Text(a.String()), nil
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
