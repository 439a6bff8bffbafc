// Package bus 班车报名的数据访问层
//
// 所有查询都通过 rdb/statement 执行，记录类型由 rdb/derive 生成描述：
//
//	s, err := bus.NewStoreWithOptions(db, log.Default(), &bus.StoreOptions{})
//	regs, err := s.RegistrationsForPerson(ctx, personID, true)
package bus

import (
	"context"
	"database/sql"
	"time"

	"github.com/hatlonely/busliste/kv/store"
	"github.com/hatlonely/busliste/log/logger"
	"github.com/hatlonely/busliste/rdb"
	"github.com/hatlonely/busliste/rdb/reconstruct"
	"github.com/hatlonely/busliste/rdb/statement"
	"github.com/hatlonely/busliste/uid"
	"github.com/pkg/errors"
)

type StoreOptions struct {
	// Dialect 决定 upsert 的写法
	Dialect string `cfg:"dialect" def:"sqlite3" validate:"omitempty,oneof=sqlite3 sqlite mysql"`

	// TokenLifetime 登录令牌有效期
	TokenLifetime time.Duration `cfg:"tokenLifetime" def:"1h"`

	Token         uid.TokenOptions                   `cfg:"token"`
	SettingsCache store.Options                      `cfg:"settingsCache"`
	Statement     statement.ObservableQueryerOptions `cfg:"statement"`
}

type Store struct {
	db       statement.DB
	logger   logger.Logger
	settings store.Store[string, rdb.Value]
	tokens   *uid.TokenGenerator

	dialect       string
	tokenLifetime time.Duration
	now           func() time.Time
}

func NewStoreWithOptions(db *sql.DB, log logger.Logger, options *StoreOptions) (*Store, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}
	if options == nil {
		return nil, errors.New("options is nil")
	}
	if log == nil {
		log = logger.Nop()
	}

	q, err := statement.NewObservableQueryerWithOptions(db, log, &options.Statement)
	if err != nil {
		return nil, errors.WithMessage(err, "NewObservableQueryerWithOptions failed")
	}

	settings, err := store.NewStoreWithOptions[string, rdb.Value](&options.SettingsCache)
	if err != nil {
		return nil, errors.WithMessage(err, "create settings cache failed")
	}

	tokens, err := uid.NewTokenGeneratorWithOptions(&options.Token)
	if err != nil {
		_ = settings.Close()
		return nil, errors.WithMessage(err, "NewTokenGeneratorWithOptions failed")
	}

	tokenLifetime := options.TokenLifetime
	if tokenLifetime <= 0 {
		tokenLifetime = time.Hour
	}

	return &Store{
		db:            q,
		logger:        log.WithGroup("bus"),
		settings:      settings,
		tokens:        tokens,
		dialect:       options.Dialect,
		tokenLifetime: tokenLifetime,
		now:           time.Now,
	}, nil
}

func (s *Store) Close() error {
	return s.settings.Close()
}

// exec 参数经 rdb.Encode 编码后执行
func (s *Store) exec(ctx context.Context, query string, params ...any) (sql.Result, error) {
	args, err := rdb.Args(params...)
	if err != nil {
		return nil, errors.WithMessage(err, "encode params failed")
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "exec failed [%s]", query)
	}
	return res, nil
}

// execOne 没有匹配到行时返回 ErrNotFound
func (s *Store) execOne(ctx context.Context, query string, params ...any) error {
	res, err := s.exec(ctx, query, params...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "RowsAffected failed")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// first 没有结果时返回 ErrNotFound
func first[T any](ctx context.Context, s *Store, sel statement.Select, d reconstruct.Descriptor[T]) (T, error) {
	v, err := statement.First(ctx, s.db, sel, d)
	if errors.Is(err, rdb.ErrRecordNotFound) {
		return v, ErrNotFound
	}
	return v, err
}
