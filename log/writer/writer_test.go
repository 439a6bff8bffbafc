package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConsoleWriterWithOptions(t *testing.T) {
	tests := []struct {
		name       string
		options    *ConsoleWriterOptions
		wantTarget string
	}{
		{"nil options", nil, "stderr"},
		{"stdout", &ConsoleWriterOptions{Target: "stdout"}, "stdout"},
		{"stderr", &ConsoleWriterOptions{Target: "stderr"}, "stderr"},
		{"empty target", &ConsoleWriterOptions{}, "stderr"},
		{"invalid target", &ConsoleWriterOptions{Target: "invalid"}, "stdout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewConsoleWriterWithOptions(tt.options)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTarget, w.Target())
			assert.NoError(t, w.Close())
		})
	}
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "busliste.log")

	w, err := NewFileWriterWithOptions(&FileWriterOptions{Path: path})
	require.NoError(t, err)

	n, err := w.Write([]byte("first line\n"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("after close\n"))
	assert.Error(t, err)

	// 重新打开时追加
	w, err = NewFileWriterWithOptions(&FileWriterOptions{Path: path})
	require.NoError(t, err)
	_, err = w.Write([]byte("second line\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line\n", string(content))

	_, err = NewFileWriterWithOptions(&FileWriterOptions{})
	assert.Error(t, err)
}

func TestFileWriterRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "busliste.log")

	w, err := NewFileWriterWithOptions(&FileWriterOptions{Path: path, MaxSize: 16, MaxBackups: 2})
	require.NoError(t, err)
	defer w.Close()

	for _, line := range []string{"0123456789\n", "abcdefghij\n", "ABCDEFGHIJ\n", "9876543210\n"} {
		_, err := w.Write([]byte(line))
		require.NoError(t, err)
	}

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "9876543210\n", string(content))

	backups, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	assert.Len(t, backups, 2)
}

func TestMultiWriter(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriterWithOptions(&Options{
		Type: "multi",
		Writers: []Options{
			{Type: "file", File: FileWriterOptions{Path: filepath.Join(dir, "a.log")}},
			{Type: "file", File: FileWriterOptions{Path: filepath.Join(dir, "b.log")}},
		},
	})
	require.NoError(t, err)

	_, err = w.Write([]byte("multi writer test\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	for _, name := range []string{"a.log", "b.log"} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(content), "multi writer test"))
	}

	_, err = NewMultiWriterWithOptions(nil)
	assert.Error(t, err)

	_, err = NewWriterWithOptions(&Options{Type: "multi", Writers: []Options{{Type: "file"}}})
	assert.Error(t, err)

	_, err = NewWriterWithOptions(&Options{Type: "syslog"})
	assert.Error(t, err)
}
