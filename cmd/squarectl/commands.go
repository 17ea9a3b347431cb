package main

import (
	"context"
	"strings"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/kochabx/square/square"
)

type (
	callFunc   func(*square.Client, context.Context) (*square.Response, error)
	callIDFunc func(*square.Client, context.Context, string) (*square.Response, error)
	listFunc   func(*square.Client, context.Context, square.ListParams) (*square.Response, error)
)

// run prints the body even when the call failed, then returns the error
func (a *app) run(cmd *cobra.Command, resp *square.Response, err error) error {
	if werr := writeResponse(cmd.OutOrStdout(), resp); werr != nil && err == nil {
		err = werr
	}
	return err
}

func (a *app) call(use, short string, fn callFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := fn(a.client, cmd.Context())
			return a.run(cmd, resp, err)
		},
	}
}

func (a *app) callID(use, short string, fn callIDFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := fn(a.client, cmd.Context(), args[0])
			return a.run(cmd, resp, err)
		},
	}
}

func (a *app) listCmd(use, short string, fn listFunc) *cobra.Command {
	var begin, end, order, cursor string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := square.ListParams{SortOrder: square.SortOrder(strings.ToUpper(order)), Cursor: cursor}
			var err error
			if p.Begin, err = parseTime(begin); err != nil {
				return err
			}
			if p.End, err = parseTime(end); err != nil {
				return err
			}

			resp, err := fn(a.client, cmd.Context(), p)
			return a.run(cmd, resp, err)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&begin, "begin", "", "start of the reporting period (RFC 3339)")
	flags.StringVar(&end, "end", "", "end of the reporting period (RFC 3339)")
	flags.StringVar(&order, "order", "DESC", "sort order, ASC or DESC")
	flags.StringVar(&cursor, "cursor", "", "cursor of the next page")
	return cmd
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (a *app) inventoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "List inventory counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.client.ListInventory(cmd.Context(), limit)
			return a.run(cmd, resp, err)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "page size, 0 uses the server default")
	return cmd
}

func (a *app) customersCmd() *cobra.Command {
	var cursor string

	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.client.ListCustomers(cmd.Context(), cursor)
			return a.run(cmd, resp, err)
		},
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "cursor of the next page")
	return cmd
}

func (a *app) customerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "customer <id>",
		Short: "Show one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.GetCustomer(cmd.Context(), square.Customer{ID: args[0]})
			return a.run(cmd, resp, err)
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration with tokens masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, l := a.cfg.Square, a.cfg.Log

			table := uitable.New()
			table.RightAlign(0)
			table.Separator = " "
			table.AddRow("base_url:", s.BaseURL)
			table.AddRow("timeout:", s.Timeout)
			table.AddRow("v1_token:", mask(s.V1Token))
			table.AddRow("v2_token:", mask(s.V2Token))
			table.AddRow("v1_location_id:", s.V1LocationID)
			table.AddRow("v2_location_id:", s.V2LocationID)
			if s.RedirectURL != "" {
				table.AddRow("redirect_url:", s.RedirectURL)
			}
			table.AddRow("log.level:", l.Level)
			if l.Dir != "" {
				table.AddRow("log.dir:", l.Dir)
				table.AddRow("log.rotate_mode:", l.RotateMode)
			}

			_, err := cmd.OutOrStdout().Write([]byte(table.String() + "\n"))
			return err
		},
	}
}

// mask keeps the first four characters of a secret
func mask(s string) string {
	if len(s) <= 4 {
		return "******"
	}
	return s[:4] + "******"
}
