package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dtroode/hms-console/internal/logger"
	"github.com/dtroode/hms-console/internal/model"
)

// DefaultFanoutLimit bounds concurrent per-patient record requests.
const DefaultFanoutLimit = 4

// Loader fetches collections from the remote service and joins records with
// their patients.
type Loader struct {
	patients     model.PatientAPI
	appointments model.AppointmentAPI
	records      model.RecordAPI
	logger       *logger.Logger
	fanoutLimit  int
}

func NewLoader(
	patients model.PatientAPI,
	appointments model.AppointmentAPI,
	records model.RecordAPI,
	logger *logger.Logger,
	fanoutLimit int,
) *Loader {
	if fanoutLimit < 1 {
		fanoutLimit = DefaultFanoutLimit
	}
	return &Loader{
		patients:     patients,
		appointments: appointments,
		records:      records,
		logger:       logger,
		fanoutLimit:  fanoutLimit,
	}
}

func (l *Loader) LoadPatients(ctx context.Context) ([]model.Patient, error) {
	patients, err := l.patients.List(ctx)
	if err != nil {
		l.logger.Error("Loader: failed to load patients",
			"error", err.Error())
		return nil, fmt.Errorf("failed to load patients: %w", err)
	}
	return patients, nil
}

// AppointmentsResult carries the appointments and the patient refresh that
// follows them. Each half stands on its own.
type AppointmentsResult struct {
	Appointments []model.Appointment
	Patients     []model.Patient
	PatientsErr  error
}

// LoadAppointments lists appointments and then refreshes patients, whether
// or not the appointments call succeeded. The returned error reports the
// appointments call only; the patient refresh outcome is in the result.
func (l *Loader) LoadAppointments(ctx context.Context) (AppointmentsResult, error) {
	var (
		result  AppointmentsResult
		apptErr error
	)

	appointments, err := l.appointments.List(ctx)
	if err != nil {
		l.logger.Error("Loader: failed to load appointments",
			"error", err.Error())
		apptErr = fmt.Errorf("failed to load appointments: %w", err)
	} else {
		result.Appointments = appointments
	}

	result.Patients, result.PatientsErr = l.LoadPatients(ctx)

	return result, apptErr
}

// RecordsResult is the outcome of a record aggregation. Failures lists the
// patients whose records could not be fetched; they contribute no records.
type RecordsResult struct {
	Records  []model.MedicalRecord
	Patients []model.Patient
	Failures []model.PatientFetchError
}

// LoadRecords lists all patients, then fetches each patient's records
// concurrently. A failed patient listing aborts the load. A failed
// per-patient fetch is logged and recorded in Failures. Records are ordered
// by patient listing order, then by remote order within a patient, and each
// carries the name of the patient it was fetched under.
func (l *Loader) LoadRecords(ctx context.Context) (RecordsResult, error) {
	patients, err := l.patients.List(ctx)
	if err != nil {
		l.logger.Error("Loader: failed to load patients for records",
			"error", err.Error())
		return RecordsResult{}, fmt.Errorf("failed to load records: %w", err)
	}

	perPatient := make([][]model.MedicalRecord, len(patients))
	failed := make([]error, len(patients))

	var g errgroup.Group
	g.SetLimit(l.fanoutLimit)
	for i, p := range patients {
		g.Go(func() error {
			records, err := l.records.ListByPatient(ctx, p.ID)
			if err != nil {
				failed[i] = err
				return nil
			}
			for j := range records {
				records[j].PatientName = p.Name
			}
			perPatient[i] = records
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return RecordsResult{}, fmt.Errorf("failed to load records: %w", err)
	}

	result := RecordsResult{
		Records:  []model.MedicalRecord{},
		Patients: patients,
	}
	for i, p := range patients {
		if failed[i] != nil {
			l.logger.Warn("Loader: failed to load patient records",
				"patient_id", p.ID,
				"patient_name", p.Name,
				"error", failed[i].Error())
			result.Failures = append(result.Failures, model.PatientFetchError{
				PatientID:   p.ID,
				PatientName: p.Name,
				Err:         failed[i],
			})
			continue
		}
		result.Records = append(result.Records, perPatient[i]...)
	}

	l.logger.Debug("Loader: records loaded",
		"patients", len(patients),
		"records", len(result.Records),
		"failures", len(result.Failures))

	return result, nil
}
