package bus

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/hatlonely/busliste/log/logger"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite3/*.sql migrations/mysql/*.sql
var migrations embed.FS

// goose 的配置是全局的
var migrateMu sync.Mutex

// Migrate 执行未应用的迁移，返回库表是否是这次新建的
func Migrate(ctx context.Context, db *sql.DB, dialect string, log logger.Logger) (bool, error) {
	if db == nil {
		return false, errors.New("db is nil")
	}
	if log == nil {
		log = logger.Nop()
	}

	var dir string
	switch dialect {
	case "sqlite3", "sqlite":
		dialect, dir = "sqlite3", "migrations/sqlite3"
	case "mysql":
		dir = "migrations/mysql"
	default:
		return false, errors.Errorf("unsupported dialect: %s", dialect)
	}

	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect(dialect); err != nil {
		return false, errors.Wrap(err, "failed to set dialect")
	}

	before, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return false, errors.Wrap(err, "failed to get migration version")
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return false, errors.Wrap(err, "failed to run migrations")
	}

	after, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return false, errors.Wrap(err, "failed to get migration version")
	}

	log.InfoContext(ctx, "database migrated", "dialect", dialect, "from", before, "to", after)
	return before == 0, nil
}

// LatestVersion 内嵌迁移中最大的版本号
func LatestVersion(dialect string) (int64, error) {
	dir := "migrations/sqlite3"
	if dialect == "mysql" {
		dir = "migrations/mysql"
	}
	entries, err := migrations.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrap(err, "read migrations failed")
	}

	var latest int64
	for _, entry := range entries {
		version, err := goose.NumericComponent(path.Base(entry.Name()))
		if err != nil {
			return 0, errors.Wrapf(err, "migration %s", entry.Name())
		}
		if version > latest {
			latest = version
		}
	}
	return latest, nil
}

type gooseLogger struct {
	log logger.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
	os.Exit(1)
}
