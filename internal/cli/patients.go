package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dtroode/hms-console/internal/dashboard"
	"github.com/dtroode/hms-console/internal/model"
)

func patientsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patients",
		Aliases: []string{"patient"},
		Short:   "Manage patients",
	}

	cmd.AddCommand(
		patientsListCmd(rt),
		patientsGetCmd(rt),
		patientsCreateCmd(rt),
		patientsUpdateCmd(rt),
		patientsDeleteCmd(rt),
	)

	return cmd
}

func patientsListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List patients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withDashboard(cmd.Context(), func(c *dashboard.Controller) error {
				snap, err := load(c, dashboard.TabPatients)
				if err != nil {
					return err
				}
				dashboard.RenderPatients(cmd.OutOrStdout(), snap.Patients)
				return nil
			})
		},
	}
}

func patientsGetCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := rt.session(cmd.Context()); err != nil {
				return err
			}

			p, err := rt.app.Client.Patients.Get(cmd.Context(), id)
			if err != nil {
				return errors.New(model.ErrorMessage(err))
			}
			dashboard.RenderPatients(cmd.OutOrStdout(), []model.Patient{p})
			return nil
		},
	}
}

func addPatientFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("dob", "", "date of birth, YYYY-MM-DD")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("phone", "", "phone number")
	cmd.Flags().String("address", "", "postal address")
	cmd.Flags().String("blood-group", "", "one of "+strings.Join(model.BloodGroups, ", "))
}

// patientPayload collects the set flags. Empty optional values are sent as
// absent.
func patientPayload(cmd *cobra.Command) (model.PatientPayload, error) {
	payload := model.PatientPayload{
		Name:        optionalFlag(cmd, "name"),
		DateOfBirth: optionalFlag(cmd, "dob"),
		Email:       optionalFlag(cmd, "email"),
		Phone:       model.Optional(model.Deref(optionalFlag(cmd, "phone"))),
		Address:     model.Optional(model.Deref(optionalFlag(cmd, "address"))),
		BloodGroup:  model.Optional(model.Deref(optionalFlag(cmd, "blood-group"))),
	}

	if payload.DateOfBirth != nil {
		if err := model.ValidateDate(*payload.DateOfBirth); err != nil {
			return payload, err
		}
	}
	if payload.BloodGroup != nil && !model.ValidBloodGroup(*payload.BloodGroup) {
		return payload, fmt.Errorf("invalid blood group %q", *payload.BloodGroup)
	}

	return payload, nil
}

func patientsCreateCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a patient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := patientPayload(cmd)
			if err != nil {
				return err
			}
			if model.Deref(payload.Name) == "" || payload.DateOfBirth == nil || model.Deref(payload.Email) == "" {
				return errors.New("--name, --dob and --email are required")
			}

			return rt.withDashboard(cmd.Context(), func(c *dashboard.Controller) error {
				_, err := c.CreatePatient(cmd.Context(), payload)
				return reportMutation(cmd, c, err)
			})
		},
	}
	addPatientFlags(cmd)

	return cmd
}

func patientsUpdateCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			payload, err := patientPayload(cmd)
			if err != nil {
				return err
			}
			if payload == (model.PatientPayload{}) {
				return errors.New("nothing to update")
			}

			return rt.withDashboard(cmd.Context(), func(c *dashboard.Controller) error {
				_, err := c.UpdatePatient(cmd.Context(), id, payload)
				return reportMutation(cmd, c, err)
			})
		},
	}
	addPatientFlags(cmd)

	return cmd
}

func patientsDeleteCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a patient with their appointments and records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				ok, err := rt.confirm(cmd.ErrOrStderr(),
					fmt.Sprintf("Delete patient %d? All their appointments and records will also be deleted.", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			return rt.withDashboard(cmd.Context(), func(c *dashboard.Controller) error {
				return reportMutation(cmd, c, c.DeletePatient(cmd.Context(), id))
			})
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "skip confirmation")

	return cmd
}
