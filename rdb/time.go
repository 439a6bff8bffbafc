package rdb

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// TimeLayout 时间以 UTC 文本存储，字典序与时间先后一致
const TimeLayout = "2006-01-02 15:04:05.999999999Z07:00"

var timeLayouts = []string{
	TimeLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime 依次尝试支持的格式，没有时区的文本按 UTC 处理
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Errorf("unsupported time format %q", s)
}
