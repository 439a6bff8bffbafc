package cfg

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// unmarshal 将文件内容解析为通用的 map
func unmarshal(data []byte, format string) (map[string]any, error) {
	var tree map[string]any
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, errors.Wrap(err, "failed to decode YAML")
		}
	case "toml":
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, errors.Wrap(err, "failed to decode TOML")
		}
	case "json":
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, errors.Wrap(err, "failed to decode JSON")
		}
	default:
		return nil, errors.Errorf("unsupported config format: %q", format)
	}

	if tree == nil {
		tree = map[string]any{}
	}
	return normalize(tree).(map[string]any), nil
}

// normalize 把 map[any]any 统一成 map[string]any
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	case []map[string]any:
		// toml 的表数组
		s := make([]any, len(x))
		for i, e := range x {
			s[i] = normalize(e)
		}
		return s
	default:
		return v
	}
}
