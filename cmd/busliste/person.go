package main

import (
	"fmt"

	"github.com/hatlonely/busliste/bus"
	"github.com/hatlonely/busliste/rdb"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newPersonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage persons and their login tokens",
	}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List persons ordered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			filter := bus.OnlyVisible
			if all {
				filter = bus.IncludingInvisible
			}
			persons, err := a.store.ListPersons(cmd.Context(), filter)
			if err != nil {
				return err
			}

			rows := make([]table.Row, 0, len(persons))
			for _, p := range persons {
				rows = append(rows, table.Row{p.ID, p.Prename, p.Name, p.Email.String(), p.IsSuperuser, p.IsVisible})
			}
			a.render(table.Row{"ID", "Prename", "Name", "Email", "Superuser", "Visible"}, rows)
			return nil
		},
	}
	list.Flags().BoolVar(&all, "all", false, "include invisible persons")
	cmd.AddCommand(list)

	var superuser bool
	add := &cobra.Command{
		Use:   "add <prename> <name> <email>",
		Short: "Add a visible person",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			email, err := rdb.ParseAddress(args[2])
			if err != nil {
				return err
			}
			id, err := a.store.InsertPerson(cmd.Context(), bus.NewPerson{
				Prename:     args[0],
				Name:        args[1],
				Email:       email,
				IsSuperuser: superuser,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "person %d added\n", id)
			return nil
		},
	}
	add.Flags().BoolVar(&superuser, "superuser", false, "grant superuser rights")
	cmd.AddCommand(add)

	var hidden bool
	update := &cobra.Command{
		Use:   "update <id> <prename> <name> <email>",
		Short: "Change name, email and visibility of a person",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			email, err := rdb.ParseAddress(args[3])
			if err != nil {
				return err
			}
			err = a.store.UpdatePerson(cmd.Context(), bus.UpdatePerson{
				ID:        id,
				Prename:   args[1],
				Name:      args[2],
				Email:     email,
				IsVisible: !hidden,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "person %d updated\n", id)
			return nil
		},
	}
	update.Flags().BoolVar(&hidden, "hidden", false, "hide the person from registration lists")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a person and all their registrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeletePerson(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "person %d deleted\n", id)
			return nil
		},
	})

	var clearToken bool
	token := &cobra.Command{
		Use:   "token <id>",
		Short: "Issue a new login token, or clear it with --clear",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if clearToken {
				if err := a.store.UpdateToken(cmd.Context(), id, nil); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "token of person %d cleared\n", id)
				return nil
			}

			t, err := a.store.IssueLoginToken(cmd.Context(), id)
			if err != nil {
				return errors.WithMessagef(err, "person %d", id)
			}
			fmt.Fprintln(a.out, t)
			return nil
		},
	}
	token.Flags().BoolVar(&clearToken, "clear", false, "remove the login token")
	cmd.AddCommand(token)

	return cmd
}
