package log

import (
	"sync/atomic"

	"github.com/hatlonely/busliste/log/logger"
	"github.com/pkg/errors"
)

var defaultLogger atomic.Value // logger.Logger

func init() {
	// 默认输出 text 格式到 stderr，不污染命令行的标准输出
	l, err := logger.NewSLogWithOptions(&logger.SLogOptions{
		Level:  "info",
		Format: "text",
	})
	if err != nil {
		panic("failed to initialize default logger: " + err.Error())
	}
	defaultLogger.Store(holder{l})
}

type holder struct {
	logger.Logger
}

func Default() logger.Logger {
	return defaultLogger.Load().(holder).Logger
}

// SetDefault l 为 nil 时忽略
func SetDefault(l logger.Logger) {
	if l != nil {
		defaultLogger.Store(holder{l})
	}
}

// NewLoggerWithOptions options 为 nil 时返回默认日志器
func NewLoggerWithOptions(options *logger.SLogOptions) (logger.Logger, error) {
	if options == nil {
		return Default(), nil
	}
	l, err := logger.NewSLogWithOptions(options)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create logger")
	}
	return l, nil
}
