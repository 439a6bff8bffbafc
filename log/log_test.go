package log

import (
	"path/filepath"
	"testing"

	"github.com/hatlonely/busliste/log/logger"
	"github.com/hatlonely/busliste/log/writer"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefault(t *testing.T) {
	Convey("默认日志器", t, func() {
		So(Default(), ShouldNotBeNil)

		old := Default()
		defer SetDefault(old)

		SetDefault(nil)
		So(Default(), ShouldEqual, old)

		nop := logger.Nop()
		SetDefault(nop)
		So(Default(), ShouldEqual, nop)
	})
}

func TestNewLoggerWithOptions(t *testing.T) {
	Convey("NewLoggerWithOptions", t, func() {
		l, err := NewLoggerWithOptions(nil)
		So(err, ShouldBeNil)
		So(l, ShouldEqual, Default())

		l, err = NewLoggerWithOptions(&logger.SLogOptions{
			Level:  "debug",
			Format: "json",
			Output: writer.Options{Type: "file", File: writer.FileWriterOptions{Path: filepath.Join(t.TempDir(), "app.log")}},
		})
		So(err, ShouldBeNil)
		So(l, ShouldNotBeNil)
		l.Debug("drive added", "drive_id", 1)

		_, err = NewLoggerWithOptions(&logger.SLogOptions{Level: "loud"})
		So(err, ShouldNotBeNil)
	})
}
