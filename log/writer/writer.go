package writer

import (
	"io"

	"github.com/pkg/errors"
)

// Writer 日志输出器接口
type Writer interface {
	io.Writer
	io.Closer
}

// Options 输出目标配置
//
//	output:
//	  type: multi
//	  writers:
//	    - type: console
//	    - type: file
//	      file:
//	        path: log/busliste.log
type Options struct {
	// Type console, file 或 multi
	Type string `cfg:"type" def:"console" validate:"omitempty,oneof=console file multi"`

	Console ConsoleWriterOptions `cfg:"console"`
	File    FileWriterOptions    `cfg:"file"`

	// Writers multi 的子输出器
	Writers []Options `cfg:"writers"`
}

func NewWriterWithOptions(options *Options) (Writer, error) {
	if options == nil {
		return NewConsoleWriterWithOptions(nil)
	}

	switch options.Type {
	case "", "console":
		return NewConsoleWriterWithOptions(&options.Console)
	case "file":
		return NewFileWriterWithOptions(&options.File)
	case "multi":
		return NewMultiWriterWithOptions(options.Writers)
	default:
		return nil, errors.Errorf("unsupported writer type: %s", options.Type)
	}
}
