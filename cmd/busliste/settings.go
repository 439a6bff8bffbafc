package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/hatlonely/busliste/rdb"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			settings, err := a.store.AllSettings(cmd.Context())
			if err != nil {
				return err
			}

			names := make([]string, 0, len(settings))
			for name := range settings {
				names = append(names, name)
			}
			sort.Strings(names)

			rows := make([]table.Row, 0, len(names))
			for _, name := range names {
				rows = append(rows, table.Row{name, settings[name]})
			}
			a.render(table.Row{"Name", "Value"}, rows)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <name>",
		Short: "Print the value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			v, err := a.store.Setting(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, v.String())
			return nil
		},
	})

	var null, integer bool
	set := &cobra.Command{
		Use:   "set <name> [value]",
		Short: "Change a setting",
		Long: `Change an existing setting. The value is stored as text unless --int or --null is given.`,
		Example: `  busliste settings set login-message "No bus on 24.12."
  busliste settings set default-registration-cap 40 --int
  busliste settings set default-deadline --null`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			v, err := settingValue(args[1:], null, integer)
			if err != nil {
				return err
			}
			if err := a.store.SetSetting(cmd.Context(), args[0], v); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "setting %s updated\n", args[0])
			return nil
		},
	}
	set.Flags().BoolVar(&null, "null", false, "store NULL")
	set.Flags().BoolVar(&integer, "int", false, "store the value as integer")
	set.MarkFlagsMutuallyExclusive("null", "int")
	cmd.AddCommand(set)

	return cmd
}

func settingValue(args []string, null, integer bool) (rdb.Value, error) {
	if null {
		if len(args) != 0 {
			return rdb.Value{}, errors.New("--null takes no value")
		}
		return rdb.Null(), nil
	}
	if len(args) != 1 {
		return rdb.Value{}, errors.New("missing value")
	}
	if integer {
		i, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return rdb.Value{}, errors.Errorf("invalid integer %q", args[0])
		}
		return rdb.Integer(i), nil
	}
	return rdb.Text(args[0]), nil
}
