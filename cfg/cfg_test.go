package cfg

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type databaseOptions struct {
	Driver      string        `cfg:"driver" def:"sqlite3" validate:"oneof=sqlite3 sqlite mysql"`
	Database    string        `cfg:"database" def:"busliste.db"`
	MaxConns    int           `cfg:"maxConns"`
	ConnMaxIdle time.Duration `cfg:"connMaxIdle" def:"5m"`
}

type mailOptions struct {
	Email      string `cfg:"email" validate:"omitempty,email"`
	SMTPServer string `cfg:"smtpServer"`
}

type appOptions struct {
	Database databaseOptions   `cfg:"database"`
	Mail     *mailOptions      `cfg:"mail"`
	Tags     []string          `cfg:"tags" def:"a,b"`
	Labels   map[string]string `cfg:"labels"`
	Start    time.Time         `cfg:"start"`
	Color    color             `cfg:"color"`
	Internal string            `cfg:"-" def:"never"`
}

// color 形如 #102030
type color struct {
	r, g, b uint8
}

func (c *color) UnmarshalText(text []byte) error {
	_, err := fmt.Sscanf(string(text), "#%02x%02x%02x", &c.r, &c.g, &c.b)
	return err
}

func writeFile(t *testing.T, name string, content string) string {
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}

func TestLoad(t *testing.T) {
	Convey("Load", t, func() {
		Convey("yaml", func() {
			filename := writeFile(t, "app.yaml", `
database:
  driver: mysql
  maxConns: 8
  connMaxIdle: 30s
mail:
  email: bus@example.com
  smtpServer: smtp.example.com
labels:
  region: de
start: "2022-12-14 20:00:00"
`)
			var options appOptions
			So(Load(filename, &options), ShouldBeNil)
			So(options.Database.Driver, ShouldEqual, "mysql")
			So(options.Database.Database, ShouldEqual, "busliste.db")
			So(options.Database.MaxConns, ShouldEqual, 8)
			So(options.Database.ConnMaxIdle, ShouldEqual, 30*time.Second)
			So(options.Mail.Email, ShouldEqual, "bus@example.com")
			So(options.Mail.SMTPServer, ShouldEqual, "smtp.example.com")
			So(options.Labels, ShouldResemble, map[string]string{"region": "de"})
			So(options.Tags, ShouldResemble, []string{"a", "b"})
			So(options.Start.Equal(time.Date(2022, 12, 14, 20, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(options.Internal, ShouldEqual, "")
		})

		Convey("toml", func() {
			filename := writeFile(t, "app.toml", `
tags = ["x"]

[database]
driver = "sqlite"
maxconns = 2
`)
			var options appOptions
			So(Load(filename, &options), ShouldBeNil)
			So(options.Database.Driver, ShouldEqual, "sqlite")
			So(options.Database.MaxConns, ShouldEqual, 2)
			So(options.Tags, ShouldResemble, []string{"x"})
		})

		Convey("json", func() {
			filename := writeFile(t, "app.json", `{"database": {"maxConns": 4.0}, "mail": {"email": "bus@example.com"}}`)
			var options appOptions
			So(Load(filename, &options), ShouldBeNil)
			So(options.Database.MaxConns, ShouldEqual, 4)
			So(options.Database.Driver, ShouldEqual, "sqlite3")
		})

		Convey("校验失败", func() {
			filename := writeFile(t, "app.yaml", "database:\n  driver: postgres\n")
			var options appOptions
			So(Load(filename, &options), ShouldNotBeNil)

			filename = writeFile(t, "mail.yaml", "mail:\n  email: not-an-address\n")
			So(Load(filename, &options), ShouldNotBeNil)
		})

		Convey("类型错误", func() {
			filename := writeFile(t, "app.json", `{"database": {"maxConns": 1.5}}`)
			var options appOptions
			err := Load(filename, &options)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "maxConns")
		})

		Convey("未知格式和不存在的文件", func() {
			var options appOptions
			So(Load(writeFile(t, "app.ini", "a=b"), &options), ShouldNotBeNil)
			So(Load(filepath.Join(t.TempDir(), "missing.yaml"), &options), ShouldNotBeNil)
			So(Load("", options), ShouldNotBeNil)
		})
	})
}

func TestLoadEnv(t *testing.T) {
	Convey("环境变量覆盖文件", t, func() {
		filename := writeFile(t, "app.yaml", "database:\n  driver: mysql\n  maxConns: 8\n")
		t.Setenv("BUSLISTE_DATABASE_MAX_CONNS", "16")
		t.Setenv("BUSLISTE_DATABASE_CONN_MAX_IDLE", "1m")
		t.Setenv("BUSLISTE_MAIL_SMTP_SERVER", "mail.example.com")
		t.Setenv("BUSLISTE_TAGS", "x, y")
		t.Setenv("BUSLISTE_COLOR", "#102030")

		var options appOptions
		So(Load(filename, &options, WithEnvPrefix("BUSLISTE")), ShouldBeNil)
		So(options.Database.Driver, ShouldEqual, "mysql")
		So(options.Database.MaxConns, ShouldEqual, 16)
		So(options.Database.ConnMaxIdle, ShouldEqual, time.Minute)
		So(options.Mail.SMTPServer, ShouldEqual, "mail.example.com")
		So(options.Tags, ShouldResemble, []string{"x", "y"})
		So(options.Color, ShouldResemble, color{r: 0x10, g: 0x20, b: 0x30})

		Convey("没有文件时只用环境变量", func() {
			var options appOptions
			So(Load("", &options, WithEnvPrefix("BUSLISTE_")), ShouldBeNil)
			So(options.Database.Driver, ShouldEqual, "sqlite3")
			So(options.Database.MaxConns, ShouldEqual, 16)
		})
	})
}

func TestEnvName(t *testing.T) {
	for in, want := range map[string]string{
		"maxConns":   "MAX_CONNS",
		"smtpServer": "SMTP_SERVER",
		"JWTKey":     "JWT_KEY",
		"driver":     "DRIVER",
		"level2":     "LEVEL2",
	} {
		assert.Equal(t, want, envName(in), in)
	}
}

func TestSetDefaults(t *testing.T) {
	type inner struct {
		Port int `def:"3306"`
	}
	type config struct {
		Name     string        `def:"default_name"`
		Height   float64       `def:"175.5"`
		IsActive bool          `def:"true"`
		Size     uint32        `def:"64"`
		Timeout  time.Duration `def:"30s"`
		Ports    []int         `def:"1, 2"`
		Inner    inner
		Pointer  *inner
		Counted  *int  `def:"3"`
		Skipped  int   `cfg:"-" def:"1"`
		Set      int   `def:"7"`
		Bytes    []byte `def:"raw"`
	}

	c := &config{Set: 9}
	require.NoError(t, SetDefaults(c))
	assert.Equal(t, "default_name", c.Name)
	assert.Equal(t, 175.5, c.Height)
	assert.True(t, c.IsActive)
	assert.Equal(t, uint32(64), c.Size)
	assert.Equal(t, 30*time.Second, c.Timeout)
	assert.Equal(t, []int{1, 2}, c.Ports)
	assert.Equal(t, 3306, c.Inner.Port)
	require.NotNil(t, c.Pointer)
	assert.Equal(t, 3306, c.Pointer.Port)
	require.NotNil(t, c.Counted)
	assert.Equal(t, 3, *c.Counted)
	assert.Equal(t, 0, c.Skipped)
	assert.Equal(t, 9, c.Set)
	assert.Equal(t, []byte("raw"), c.Bytes)

	assert.Error(t, SetDefaults(nil))
	assert.Error(t, SetDefaults(config{}))
	assert.Error(t, SetDefaults(&struct {
		N int `def:"abc"`
	}{}))
}
