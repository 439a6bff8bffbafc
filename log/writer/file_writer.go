package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// FileWriterOptions 文件输出配置
type FileWriterOptions struct {
	// 文件路径
	Path string `cfg:"path"`
	// 单个文件最大字节数，超过后轮转，0 表示不限制
	MaxSize int64 `cfg:"maxSize"`
	// 保留的轮转文件个数，0 表示不限制
	MaxBackups int `cfg:"maxBackups"`
}

// FileWriter 文件输出器
type FileWriter struct {
	options FileWriterOptions
	file    *os.File
	size    int64
	mu      sync.Mutex
}

func NewFileWriterWithOptions(options *FileWriterOptions) (*FileWriter, error) {
	if options == nil || options.Path == "" {
		return nil, errors.New("file path is required")
	}

	dir := filepath.Dir(options.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory %s", dir)
	}

	w := &FileWriter{options: *options}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (f *FileWriter) open() error {
	file, err := os.OpenFile(f.options.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to open file %s", f.options.Path)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return errors.Wrapf(err, "failed to stat file %s", f.options.Path)
	}
	f.file = file
	f.size = info.Size()
	return nil
}

func (f *FileWriter) Write(p []byte) (n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return 0, errors.New("file is closed")
	}

	if f.options.MaxSize > 0 && f.size > 0 && f.size+int64(len(p)) > f.options.MaxSize {
		if err := f.rotate(); err != nil {
			return 0, err
		}
	}

	n, err = f.file.Write(p)
	f.size += int64(n)
	return n, err
}

// rotate 当前文件改名为 <path>.<时间戳>，再打开新文件
func (f *FileWriter) rotate() error {
	if err := f.file.Close(); err != nil {
		return errors.Wrap(err, "close before rotate failed")
	}
	f.file = nil

	backup := fmt.Sprintf("%s.%s", f.options.Path, time.Now().UTC().Format("20060102T150405.000000000"))
	if err := os.Rename(f.options.Path, backup); err != nil {
		return errors.Wrap(err, "rename log file failed")
	}
	if err := f.prune(); err != nil {
		return err
	}
	return f.open()
}

func (f *FileWriter) prune() error {
	if f.options.MaxBackups <= 0 {
		return nil
	}
	backups, err := filepath.Glob(f.options.Path + ".*")
	if err != nil {
		return errors.Wrap(err, "list backups failed")
	}
	if len(backups) <= f.options.MaxBackups {
		return nil
	}
	// 时间戳定长，字典序即时间序
	sort.Strings(backups)
	for _, name := range backups[:len(backups)-f.options.MaxBackups] {
		if err := os.Remove(name); err != nil {
			return errors.Wrapf(err, "remove backup %s failed", name)
		}
	}
	return nil
}

func (f *FileWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file != nil {
		err := f.file.Close()
		f.file = nil
		return err
	}
	return nil
}
