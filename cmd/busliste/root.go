package main

import (
	"context"
	"database/sql"
	"io"

	"github.com/hatlonely/busliste/bus"
	"github.com/hatlonely/busliste/log"
	"github.com/hatlonely/busliste/log/logger"
	"github.com/hatlonely/busliste/rdb/database"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type appKey struct{}

// app 一次命令执行用到的资源
type app struct {
	config *Config
	logger logger.Logger
	db     *sql.DB
	store  *bus.Store

	// created 这次执行新建了库表
	created bool
	format  string
	out     io.Writer
}

func appFrom(ctx context.Context) *app {
	a, _ := ctx.Value(appKey{}).(*app)
	return a
}

func newRootCmd() (*cobra.Command, func()) {
	var configFile, format string
	var opened *app

	root := &cobra.Command{
		Use:   "busliste",
		Short: "Manage drives, persons and registrations of the bus list",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			if !formats[format] {
				return errors.Errorf("unsupported format: %s", format)
			}

			a, err := openApp(cmd.Context(), configFile)
			if err != nil {
				return err
			}
			a.format = format
			a.out = cmd.OutOrStdout()
			opened = a

			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (yaml, toml or json)")
	root.PersistentFlags().StringVarP(&format, "format", "f", "table", "output format: table, csv or markdown")

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newDriveCmd())
	root.AddCommand(newPersonCmd())
	root.AddCommand(newRegistrationCmd())
	root.AddCommand(newCountCmd())
	root.AddCommand(newSettingsCmd())

	return root, func() {
		if opened != nil {
			opened.Close()
		}
	}
}

// openApp 加载配置，连接数据库并执行未应用的迁移
func openApp(ctx context.Context, configFile string) (*app, error) {
	config, err := loadConfig(configFile)
	if err != nil {
		return nil, err
	}

	l, err := log.NewLoggerWithOptions(&config.Log)
	if err != nil {
		return nil, err
	}
	log.SetDefault(l)

	db, err := database.NewSQLWithOptions(&config.Database)
	if err != nil {
		return nil, errors.WithMessage(err, "open database failed")
	}

	created, err := bus.Migrate(ctx, db, config.Database.Dialect(), l)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	// upsert 的写法跟随驱动
	storeOptions := config.Store
	storeOptions.Dialect = config.Database.Dialect()
	store, err := bus.NewStoreWithOptions(db, l, &storeOptions)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &app{
		config:  config,
		logger:  l,
		db:      db,
		store:   store,
		created: created,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("close store failed", "error", err.Error())
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("close database failed", "error", err.Error())
	}
	if c, ok := a.logger.(io.Closer); ok {
		_ = c.Close()
	}
}
