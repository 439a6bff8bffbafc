package uid

import (
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type TokenOptions struct {
	// Version v1, v4, v6 或 v7
	Version string `cfg:"version" def:"v4" validate:"omitempty,oneof=v1 v4 v6 v7"`
	// WithHyphens 是否包含中划线连字符，默认不包含
	WithHyphens bool `cfg:"withHyphens"`
}

// TokenGenerator 生成登录令牌
type TokenGenerator struct {
	version     string
	withHyphens bool
}

func NewTokenGeneratorWithOptions(options *TokenOptions) (*TokenGenerator, error) {
	if options == nil {
		options = &TokenOptions{}
	}

	version := options.Version
	switch version {
	case "":
		version = "v4"
	case "v1", "v4", "v6", "v7":
	default:
		return nil, errors.Errorf("unsupported uuid version: %s", version)
	}

	return &TokenGenerator{
		version:     version,
		withHyphens: options.WithHyphens,
	}, nil
}

func (g *TokenGenerator) Generate() (string, error) {
	var u uuid.UUID
	var err error
	switch g.version {
	case "v1":
		u, err = uuid.NewUUID()
	case "v6":
		u, err = uuid.NewV6()
	case "v7":
		u, err = uuid.NewV7()
	default:
		u, err = uuid.NewRandom()
	}
	if err != nil {
		return "", errors.Wrapf(err, "generate uuid %s failed", g.version)
	}

	if g.withHyphens {
		return u.String(), nil
	}
	return hex.EncodeToString(u[:]), nil
}
