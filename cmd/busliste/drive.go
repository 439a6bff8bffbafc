package main

import (
	"fmt"

	"github.com/hatlonely/busliste/bus"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newDriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drive",
		Short: "List, add and delete drives",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all drives by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			drives, err := a.store.ListDrives(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([]table.Row, 0, len(drives))
			for _, d := range drives {
				rows = append(rows, table.Row{d.ID, formatTime(&d.Date), formatTime(d.Deadline), formatCap(d.RegistrationCap)})
			}
			a.render(table.Row{"ID", "Date", "Deadline", "Cap"}, rows)
			return nil
		},
	})

	var deadline string
	var registrationCap uint32
	add := &cobra.Command{
		Use:   "add <date>",
		Short: "Add a drive",
		Long: `Add a drive on the given date. Dates are read as UTC unless they carry an offset.

Without --cap the default-registration-cap setting is used.`,
		Example: `  busliste drive add "2022-12-14 20:00"
  busliste drive add 2022-12-17T19:30:00+01:00 --deadline "2022-12-16 12:00" --cap 40`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			date, err := parseTime(args[0])
			if err != nil {
				return err
			}

			drive := bus.NewDrive{Date: date}
			if deadline != "" {
				t, err := parseTime(deadline)
				if err != nil {
					return err
				}
				drive.Deadline = &t
			}
			if cmd.Flags().Changed("cap") {
				drive.RegistrationCap = &registrationCap
			}

			id, err := a.store.InsertDrive(cmd.Context(), drive)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "drive %d added on %s\n", id, formatTime(&date))
			return nil
		},
	}
	add.Flags().StringVar(&deadline, "deadline", "", "registration deadline")
	add.Flags().Uint32Var(&registrationCap, "cap", 0, "maximum number of registrations")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a drive and all its registrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteDrive(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "drive %d deleted\n", id)
			return nil
		},
	})

	return cmd
}

