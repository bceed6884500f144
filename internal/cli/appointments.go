package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/hms-console/internal/dashboard"
	"github.com/dtroode/hms-console/internal/model"
)

func appointmentsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appointment", "appt"},
		Short:   "Manage appointments",
	}

	cmd.AddCommand(
		appointmentsListCmd(rt),
		appointmentsCreateCmd(rt),
		appointmentsUpdateCmd(rt),
		appointmentsDeleteCmd(rt),
	)

	return cmd
}

func appointmentsListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List appointments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withDashboard(cmd.Context(), func(c *dashboard.Controller) error {
				snap, err := load(c, dashboard.TabAppointments)
				if err != nil {
					return err
				}
				dashboard.RenderAppointments(cmd.OutOrStdout(), snap, rt.location)
				return nil
			})
		},
	}
}

// appointmentTime converts the --at flag, given in local time, to the wire
// format.
func (rt *runtime) appointmentTime(cmd *cobra.Command) (*string, error) {
	at := optionalFlag(cmd, "at")
	if at == nil {
		return nil, nil
	}
	t, err := model.ParseLocalDateTime(*at, rt.location)
	if err != nil {
		return nil, err
	}
	s := model.FormatAppointmentTime(t)
	return &s, nil
}

func appointmentStatus(cmd *cobra.Command) (*model.AppointmentStatus, error) {
	s := optionalFlag(cmd, "status")
	if s == nil {
		return nil, nil
	}
	status := model.AppointmentStatus(*s)
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", *s)
	}
	return &status, nil
}

func appointmentsCreateCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Book an appointment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetInt64("patient")
			if patientID <= 0 {
				return errors.New("--patient is required")
			}
			doctor, _ := cmd.Flags().GetString("doctor")
			if doctor == "" {
				return errors.New("--doctor is required")
			}
			at, err := rt.appointmentTime(cmd)
			if err != nil {
				return err
			}
			if at == nil {
				return errors.New("--at is required")
			}
			status, err := appointmentStatus(cmd)
			if err != nil {
				return err
			}

			payload := model.AppointmentPayload{
				PatientID:           &patientID,
				DoctorName:          &doctor,
				AppointmentDateTime: at,
				Reason:              model.Optional(model.Deref(optionalFlag(cmd, "reason"))),
				Notes:               model.Optional(model.Deref(optionalFlag(cmd, "notes"))),
				Status:              status,
			}

			return rt.withDashboard(cmd.Context(), func(c *dashboard.Controller) error {
				_, err := c.CreateAppointment(cmd.Context(), payload)
				return reportMutation(cmd, c, err)
			})
		},
	}

	cmd.Flags().Int64("patient", 0, "patient id")
	cmd.Flags().String("doctor", "", "doctor name")
	cmd.Flags().String("at", "", "local date and time, YYYY-MM-DDTHH:MM")
	cmd.Flags().String("reason", "", "reason for the visit")
	cmd.Flags().String("notes", "", "notes")
	cmd.Flags().String("status", "", "scheduled, completed or cancelled")

	return cmd
}

func appointmentsUpdateCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Reschedule an appointment or change its status or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			at, err := rt.appointmentTime(cmd)
			if err != nil {
				return err
			}
			status, err := appointmentStatus(cmd)
			if err != nil {
				return err
			}

			payload := model.AppointmentPayload{
				AppointmentDateTime: at,
				Notes:               optionalFlag(cmd, "notes"),
				Status:              status,
			}
			if payload == (model.AppointmentPayload{}) {
				return errors.New("nothing to update")
			}

			return rt.withDashboard(cmd.Context(), func(c *dashboard.Controller) error {
				_, err := c.UpdateAppointment(cmd.Context(), id, payload)
				return reportMutation(cmd, c, err)
			})
		},
	}

	cmd.Flags().String("at", "", "local date and time, YYYY-MM-DDTHH:MM")
	cmd.Flags().String("notes", "", "notes")
	cmd.Flags().String("status", "", "scheduled, completed or cancelled")

	return cmd
}

func appointmentsDeleteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rt.withDashboard(cmd.Context(), func(c *dashboard.Controller) error {
				return reportMutation(cmd, c, c.DeleteAppointment(cmd.Context(), id))
			})
		},
	}
}
