package database

import (
	"context"
	"database/sql"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	mattn "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

const (
	DriverSQLite3 = "sqlite3" // github.com/mattn/go-sqlite3
	DriverSQLite  = "sqlite"  // modernc.org/sqlite
	DriverMySQL   = "mysql"
)

type SQLOptions struct {
	Driver      string        `cfg:"driver" def:"sqlite3" validate:"oneof=sqlite3 sqlite mysql"`
	DSN         string        `cfg:"dsn"`
	Host        string        `cfg:"host" def:"localhost"`
	Port        string        `cfg:"port" def:"3306"`
	Database    string        `cfg:"database" def:"busliste.db"`
	Username    string        `cfg:"username"`
	Password    string        `cfg:"password"`
	Charset     string        `cfg:"charset" def:"utf8mb4"`
	MaxConns    int           `cfg:"maxConns" def:"10"`
	MaxIdle     int           `cfg:"maxIdle" def:"5"`
	ConnMaxIdle time.Duration `cfg:"connMaxIdle" def:"5m"`
	ForeignKeys bool          `cfg:"foreignKeys" def:"true"`
}

// NewSQLWithOptions 打开连接池并 ping
func NewSQLWithOptions(options *SQLOptions) (*sql.DB, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}

	dsn, err := options.FormatDSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(options.Driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "sql.Open failed, driver [%s]", options.Driver)
	}

	maxConns, maxIdle, connMaxIdle := options.MaxConns, options.MaxIdle, options.ConnMaxIdle
	if options.IsMemory() {
		// 每个连接各有一个内存库，唯一的连接关闭后数据就没了
		maxConns, maxIdle, connMaxIdle = 1, 1, 0
		db.SetConnMaxLifetime(0)
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxIdleTime(connMaxIdle)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping failed, driver [%s]", options.Driver)
	}

	return db, nil
}

// FormatDSN DSN 非空时原样使用
func (o *SQLOptions) FormatDSN() (string, error) {
	if o.DSN != "" {
		return o.DSN, nil
	}

	switch o.Driver {
	case DriverMySQL:
		cfg := mysql.NewConfig()
		cfg.User = o.Username
		cfg.Passwd = o.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(o.Host, o.Port)
		cfg.DBName = o.Database
		cfg.ParseTime = true
		cfg.Loc = time.UTC
		// RowsAffected 返回匹配的行数，与 sqlite 一致
		cfg.ClientFoundRows = true
		if o.Charset != "" {
			cfg.Params = map[string]string{"charset": o.Charset}
		}
		return cfg.FormatDSN(), nil
	case DriverSQLite3:
		if !o.ForeignKeys {
			return o.Database, nil
		}
		return withQuery(o.Database, "_foreign_keys=on"), nil
	case DriverSQLite:
		if !o.ForeignKeys {
			return o.Database, nil
		}
		return withQuery(o.Database, "_pragma=foreign_keys(1)"), nil
	default:
		return "", errors.Errorf("unsupported driver: %s", o.Driver)
	}
}

// IsMemory sqlite 内存数据库
func (o *SQLOptions) IsMemory() bool {
	if o.Driver == DriverMySQL {
		return false
	}
	name := o.Database
	if o.DSN != "" {
		name = o.DSN
	}
	name = strings.TrimPrefix(name, "file:")
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}
	return name == ":memory:" || strings.Contains(o.DSN+o.Database, "mode=memory")
}

// Dialect goose 使用的方言
func (o *SQLOptions) Dialect() string {
	if o.Driver == DriverMySQL {
		return "mysql"
	}
	return "sqlite3"
}

func withQuery(database string, param string) string {
	if strings.Contains(database, "?") {
		return database + "&" + param
	}
	return database + "?" + param
}

// IsConstraintViolation 判断 err 是否为唯一键、外键、非空等约束冲突
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	var mattnErr mattn.Error
	if errors.As(err, &mattnErr) {
		return mattnErr.Code == mattn.ErrConstraint
	}

	var moderncErr *sqlite.Error
	if errors.As(err, &moderncErr) {
		return moderncErr.Code()&0xff == sqlitelib.SQLITE_CONSTRAINT
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062, 1451, 1452, 1048:
			return true
		}
	}

	return false
}
