package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dtroode/hms-console/internal/dashboard"
	"github.com/dtroode/hms-console/internal/model"
)

func recordsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"record"},
		Short:   "Manage medical records",
	}

	cmd.AddCommand(
		recordsListCmd(rt),
		recordsCreateCmd(rt),
		recordsDeleteCmd(rt),
	)

	return cmd
}

func recordsListCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List medical records of all patients or of one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetInt64("patient")
			if patientID > 0 {
				return rt.listPatientRecords(cmd, patientID)
			}

			return rt.withDashboard(cmd.Context(), func(c *dashboard.Controller) error {
				snap, err := load(c, dashboard.TabRecords)
				if err != nil {
					return err
				}
				dashboard.RenderRecords(cmd.OutOrStdout(), snap)
				return nil
			})
		},
	}
	cmd.Flags().Int64("patient", 0, "only this patient's records")

	return cmd
}

func (rt *runtime) listPatientRecords(cmd *cobra.Command, patientID int64) error {
	ctx := cmd.Context()
	if _, err := rt.session(ctx); err != nil {
		return err
	}

	patient, err := rt.app.Client.Patients.Get(ctx, patientID)
	if err != nil {
		return errors.New(model.ErrorMessage(err))
	}
	records, err := rt.app.Client.Records.ListByPatient(ctx, patientID)
	if err != nil {
		return errors.New(model.ErrorMessage(err))
	}
	for i := range records {
		records[i].PatientName = patient.Name
	}

	dashboard.RenderRecords(cmd.OutOrStdout(), dashboard.Snapshot{Records: records})
	return nil
}

func recordsCreateCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a medical record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetInt64("patient")
			if patientID <= 0 {
				return errors.New("--patient is required")
			}
			diagnosis, _ := cmd.Flags().GetString("diagnosis")
			doctor, _ := cmd.Flags().GetString("doctor")
			if diagnosis == "" || doctor == "" {
				return errors.New("--diagnosis and --doctor are required")
			}
			date := model.Optional(model.Deref(optionalFlag(cmd, "date")))
			if date != nil {
				if err := model.ValidateDate(*date); err != nil {
					return err
				}
			}

			payload := model.RecordPayload{
				PatientID:    &patientID,
				Diagnosis:    &diagnosis,
				DoctorName:   &doctor,
				Prescription: model.Optional(model.Deref(optionalFlag(cmd, "prescription"))),
				RecordDate:   date,
				Notes:        model.Optional(model.Deref(optionalFlag(cmd, "notes"))),
			}

			return rt.withDashboard(cmd.Context(), func(c *dashboard.Controller) error {
				_, err := c.CreateRecord(cmd.Context(), payload)
				return reportMutation(cmd, c, err)
			})
		},
	}

	cmd.Flags().Int64("patient", 0, "patient id")
	cmd.Flags().String("diagnosis", "", "diagnosis")
	cmd.Flags().String("doctor", "", "doctor name")
	cmd.Flags().String("prescription", "", "prescription")
	cmd.Flags().String("date", "", "record date, YYYY-MM-DD, defaults to today")
	cmd.Flags().String("notes", "", "notes")

	return cmd
}

func recordsDeleteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a medical record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rt.withDashboard(cmd.Context(), func(c *dashboard.Controller) error {
				return reportMutation(cmd, c, c.DeleteRecord(cmd.Context(), id))
			})
		},
	}
}
