package model

import "context"

// PatientAPI is the remote patient resource.
type PatientAPI interface {
	List(ctx context.Context) ([]Patient, error)
	Get(ctx context.Context, id int64) (Patient, error)
	Create(ctx context.Context, payload PatientPayload) (Patient, error)
	Update(ctx context.Context, id int64, payload PatientPayload) (Patient, error)
	Delete(ctx context.Context, id int64) error
}

// AppointmentAPI is the remote appointment resource.
type AppointmentAPI interface {
	List(ctx context.Context) ([]Appointment, error)
	Get(ctx context.Context, id int64) (Appointment, error)
	Create(ctx context.Context, payload AppointmentPayload) (Appointment, error)
	Update(ctx context.Context, id int64, payload AppointmentPayload) (Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// RecordAPI is the remote medical record resource. The remote store can not
// join patients and records, so records are listed per patient.
type RecordAPI interface {
	List(ctx context.Context) ([]MedicalRecord, error)
	Get(ctx context.Context, id int64) (MedicalRecord, error)
	Create(ctx context.Context, payload RecordPayload) (MedicalRecord, error)
	Update(ctx context.Context, id int64, payload RecordPayload) (MedicalRecord, error)
	Delete(ctx context.Context, id int64) error
	ListByPatient(ctx context.Context, patientID int64) ([]MedicalRecord, error)
}

// HealthChecker probes remote liveness.
type HealthChecker interface {
	Health(ctx context.Context) error
}
