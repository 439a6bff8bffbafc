package writer

import (
	"io"
	"os"
)

type ConsoleWriterOptions struct {
	// 输出目标：stdout, stderr，其他值按 stdout 处理
	Target string `cfg:"target" def:"stderr"`
}

// ConsoleWriter 控制台输出器，Close 不关闭标准输出
type ConsoleWriter struct {
	writer io.Writer
	target string
}

func NewConsoleWriterWithOptions(options *ConsoleWriterOptions) (*ConsoleWriter, error) {
	target := "stderr"
	if options != nil && options.Target != "" {
		target = options.Target
	}

	switch target {
	case "stderr":
		return &ConsoleWriter{writer: os.Stderr, target: target}, nil
	default:
		return &ConsoleWriter{writer: os.Stdout, target: "stdout"}, nil
	}
}

func (c *ConsoleWriter) Target() string {
	return c.target
}

func (c *ConsoleWriter) Write(p []byte) (n int, err error) {
	return c.writer.Write(p)
}

func (c *ConsoleWriter) Close() error {
	return nil
}
