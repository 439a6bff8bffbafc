// Package cfg 从文件和环境变量加载选项结构体
//
// 加载顺序（优先级从低到高）：文件 < 环境变量，最后补默认值并校验：
//
//	var options AppOptions
//	if err := cfg.Load("busliste.yaml", &options, cfg.WithEnvPrefix("BUSLISTE")); err != nil {
//		return err
//	}
//
// 字段名取 cfg tag，没有 tag 时取字段名，匹配时忽略大小写。
// 环境变量名为前缀加上字段路径的大写蛇形，如 database.maxConns 对应 BUSLISTE_DATABASE_MAX_CONNS。
package cfg

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

type loadOptions struct {
	envPrefix string
	format    string
}

type loadOption func(*loadOptions)

// WithEnvPrefix 启用环境变量覆盖
func WithEnvPrefix(prefix string) loadOption {
	return func(options *loadOptions) {
		options.envPrefix = prefix
	}
}

// WithFormat 指定文件格式，不使用扩展名推断
func WithFormat(format string) loadOption {
	return func(options *loadOptions) {
		options.format = format
	}
}

// Load 读取配置文件到 v，filename 为空时只使用环境变量和默认值
func Load(filename string, v any, opts ...loadOption) error {
	options := &loadOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var data []byte
	if filename != "" {
		var err error
		if data, err = os.ReadFile(filename); err != nil {
			return errors.Wrapf(err, "read config file %s failed", filename)
		}
		if options.format == "" {
			options.format = formatOf(filename)
		}
	}

	if err := decode(data, options, v); err != nil {
		if filename != "" {
			return errors.WithMessagef(err, "load %s", filename)
		}
		return err
	}
	return nil
}

// Decode 与 Load 相同，数据来自内存
func Decode(data []byte, format string, v any, opts ...loadOption) error {
	options := &loadOptions{format: format}
	for _, opt := range opts {
		opt(options)
	}
	return decode(data, options, v)
}

func decode(data []byte, options *loadOptions, v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("target must be a non-nil pointer")
	}

	tree := map[string]any{}
	if len(data) != 0 {
		var err error
		if tree, err = unmarshal(data, options.format); err != nil {
			return err
		}
	}

	if options.envPrefix != "" {
		overlayEnv(tree, rv.Type().Elem(), options.envPrefix, os.LookupEnv)
	}

	if err := convertValue(tree, rv.Elem()); err != nil {
		return errors.WithMessage(err, "convert config failed")
	}
	if err := SetDefaults(v); err != nil {
		return errors.WithMessage(err, "set defaults failed")
	}
	if err := Validate(v); err != nil {
		return errors.WithMessage(err, "validate config failed")
	}
	return nil
}

func formatOf(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	default:
		return ""
	}
}
