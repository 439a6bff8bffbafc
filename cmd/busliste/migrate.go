package main

import (
	"fmt"

	"github.com/hatlonely/busliste/bus"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// 迁移在打开数据库时已经执行
			a := appFrom(cmd.Context())
			version, err := bus.LatestVersion(a.config.Database.Dialect())
			if err != nil {
				return err
			}
			if a.created {
				fmt.Fprintf(a.out, "schema created, version %d\n", version)
			} else {
				fmt.Fprintf(a.out, "schema is up to date, version %d\n", version)
			}
			return nil
		},
	}
}
