package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hatlonely/busliste/bus"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRegistrationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "registration",
		Aliases: []string{"reg"},
		Short:   "Set and show registrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <person-id> <date> <true|false>",
		Short: "Register or unregister a person for the drive on a date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			personID, err := parseID(args[0])
			if err != nil {
				return err
			}
			date, err := parseTime(args[1])
			if err != nil {
				return err
			}
			registered, err := strconv.ParseBool(args[2])
			if err != nil {
				return errors.Errorf("invalid registration state %q", args[2])
			}

			if err := a.store.UpdateRegistration(cmd.Context(), bus.RegistrationUpdate{
				PersonID:   personID,
				Date:       date,
				Registered: registered,
			}); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "person %d registered on %s: %t\n", personID, formatTime(&date), registered)
			return nil
		},
	})

	var ignorePast bool
	person := &cobra.Command{
		Use:   "person <id>",
		Short: "Show the registrations of a person for every drive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			regs, err := a.store.RegistrationsForPerson(cmd.Context(), id, ignorePast)
			if err != nil {
				return err
			}

			rows := make([]table.Row, 0, len(regs))
			for _, reg := range regs {
				rows = append(rows, table.Row{formatTime(&reg.Drive.Date), formatTime(reg.Drive.Deadline), reg.Registered()})
			}
			a.render(table.Row{"Date", "Deadline", "Registered"}, rows)
			return nil
		},
	}
	person.Flags().BoolVar(&ignorePast, "ignore-past", false, "skip drives before today")
	cmd.AddCommand(person)

	cmd.AddCommand(&cobra.Command{
		Use:   "date <date>",
		Short: "Show the registrations of all visible persons on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			date, err := parseTime(args[0])
			if err != nil {
				return err
			}
			regs, err := a.store.RegistrationsForDate(cmd.Context(), date)
			if err != nil {
				return err
			}

			var registered int
			rows := make([]table.Row, 0, len(regs))
			for _, reg := range regs {
				if reg.Registered() {
					registered++
				}
				rows = append(rows, table.Row{reg.Person.Prename, reg.Person.Name, reg.Registered()})
			}
			a.render(table.Row{"Prename", "Name", "Registered"}, rows, table.Row{"", "Total", registered})
			return nil
		},
	})

	return cmd
}

func newCountCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the registrations of every person",
		Example: `  busliste count --from 2022-12-01 --to 2022-12-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			fromTime, err := optionalTime(from)
			if err != nil {
				return err
			}
			toTime, err := optionalTime(to)
			if err != nil {
				return err
			}

			counted, err := a.store.CountRegistrations(cmd.Context(), fromTime, toTime)
			if err != nil {
				return err
			}

			rows := make([]table.Row, 0, len(counted.Persons))
			for _, p := range counted.Persons {
				rows = append(rows, table.Row{p.Person.Prename, p.Person.Name, p.Count})
			}
			a.render(table.Row{"Prename", "Name", "Count"}, rows, table.Row{"", "Sum", counted.Sum})
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first date to count (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "last date to count (inclusive)")
	return cmd
}

func optionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
