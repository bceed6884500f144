package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/hms-console/internal/dashboard"
	"github.com/dtroode/hms-console/internal/model"
)

func healthCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check remote service liveness and readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if err := rt.app.Client.Health(ctx); err != nil {
				fmt.Fprintln(out, "System: Offline")
				return errors.New(model.ErrorMessage(err))
			}
			fmt.Fprintln(out, "System: Healthy")

			ready, err := rt.app.Client.Ready(ctx)
			if err != nil {
				fmt.Fprintln(out, "Database: unavailable")
				return errors.New(model.ErrorMessage(err))
			}
			fmt.Fprintf(out, "Database: %s\n", ready.Database)
			return nil
		},
	}
}

func overviewCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show counters and recent patients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withDashboard(cmd.Context(), func(c *dashboard.Controller) error {
				c.CheckHealth(cmd.Context())
				snap, err := load(c, dashboard.TabOverview)
				if err != nil {
					return err
				}
				return dashboard.Render(cmd.OutOrStdout(), snap, rt.location)
			})
		},
	}
}
