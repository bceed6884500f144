package dashboard

import (
	"context"
	"fmt"

	"github.com/dtroode/hms-console/internal/model"
)

// Mutations report the outcome as a message and, on success, reload the
// affected collection. They are never retried.

func (c *Controller) CreatePatient(ctx context.Context, payload model.PatientPayload) (model.Patient, error) {
	p, err := c.remote.Patients.Create(ctx, payload)
	if err != nil {
		c.fail(err)
		return model.Patient{}, fmt.Errorf("failed to create patient: %w", err)
	}

	c.Notify(MessageSuccess, "Patient added successfully!")
	c.loadPatients()
	return p, nil
}

func (c *Controller) UpdatePatient(ctx context.Context, id int64, payload model.PatientPayload) (model.Patient, error) {
	p, err := c.remote.Patients.Update(ctx, id, payload)
	if err != nil {
		c.fail(err)
		return model.Patient{}, fmt.Errorf("failed to update patient %d: %w", id, err)
	}

	// loaded records carry the old patient name
	c.markStale(false, true)
	c.Notify(MessageSuccess, "Patient updated!")
	c.loadPatients()
	return p, nil
}

// DeletePatient deletes a patient. The remote also deletes the patient's
// appointments and records; the loaded copies are kept and flagged stale
// until their tab is entered again.
func (c *Controller) DeletePatient(ctx context.Context, id int64) error {
	if err := c.remote.Patients.Delete(ctx, id); err != nil {
		c.fail(err)
		return fmt.Errorf("failed to delete patient %d: %w", id, err)
	}

	c.markStale(true, true)
	c.Notify(MessageSuccess, "Patient deleted!")
	c.loadPatients()
	return nil
}

func (c *Controller) CreateAppointment(ctx context.Context, payload model.AppointmentPayload) (model.Appointment, error) {
	a, err := c.remote.Appointments.Create(ctx, payload)
	if err != nil {
		c.fail(err)
		return model.Appointment{}, fmt.Errorf("failed to create appointment: %w", err)
	}

	c.Notify(MessageSuccess, "Appointment booked!")
	c.loadAppointments()
	return a, nil
}

func (c *Controller) UpdateAppointment(ctx context.Context, id int64, payload model.AppointmentPayload) (model.Appointment, error) {
	a, err := c.remote.Appointments.Update(ctx, id, payload)
	if err != nil {
		c.fail(err)
		return model.Appointment{}, fmt.Errorf("failed to update appointment %d: %w", id, err)
	}

	c.Notify(MessageSuccess, "Appointment updated!")
	c.loadAppointments()
	return a, nil
}

func (c *Controller) DeleteAppointment(ctx context.Context, id int64) error {
	if err := c.remote.Appointments.Delete(ctx, id); err != nil {
		c.fail(err)
		return fmt.Errorf("failed to delete appointment %d: %w", id, err)
	}

	c.Notify(MessageSuccess, "Appointment deleted!")
	c.loadAppointments()
	return nil
}

func (c *Controller) CreateRecord(ctx context.Context, payload model.RecordPayload) (model.MedicalRecord, error) {
	r, err := c.remote.Records.Create(ctx, payload)
	if err != nil {
		c.fail(err)
		return model.MedicalRecord{}, fmt.Errorf("failed to create record: %w", err)
	}

	c.Notify(MessageSuccess, "Record added!")
	c.loadRecords()
	return r, nil
}

func (c *Controller) DeleteRecord(ctx context.Context, id int64) error {
	if err := c.remote.Records.Delete(ctx, id); err != nil {
		c.fail(err)
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}

	c.Notify(MessageSuccess, "Record deleted!")
	c.loadRecords()
	return nil
}

func (c *Controller) fail(err error) {
	c.logger.Warn("Dashboard: mutation failed",
		"error", err.Error())
	c.Notify(MessageError, model.ErrorMessage(err))
}

func (c *Controller) markStale(appointments, records bool) {
	c.mu.Lock()
	c.state.stale.Appointments = c.state.stale.Appointments || appointments
	c.state.stale.Records = c.state.stale.Records || records
	c.mu.Unlock()
}
