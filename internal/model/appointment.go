package model

import "time"

// AppointmentStatus enumerates appointment states known to the remote store.
type AppointmentStatus string

const (
	// AppointmentScheduled is the remote default.
	AppointmentScheduled AppointmentStatus = "scheduled"
	// AppointmentCompleted marks a finished visit.
	AppointmentCompleted AppointmentStatus = "completed"
	// AppointmentCancelled marks a cancelled visit.
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment references a Patient by id. The client does not enforce
// referential integrity; the remote cascades patient deletion.
type Appointment struct {
	ID                  int64             `json:"id"`
	PatientID           int64             `json:"patient_id"`
	DoctorName          string            `json:"doctor_name"`
	AppointmentDateTime string            `json:"appointment_datetime"`
	Reason              *string           `json:"reason"`
	Notes               *string           `json:"notes"`
	Status              AppointmentStatus `json:"status"`
	CreatedAt           string            `json:"created_at,omitempty"`
	UpdatedAt           string            `json:"updated_at,omitempty"`
}

// When parses the appointment datetime as returned by the remote store.
func (a Appointment) When() (time.Time, error) {
	return ParseRemoteTime(a.AppointmentDateTime)
}

// AppointmentPayload is the body of an appointment create or update request.
// AppointmentDateTime must be formatted with FormatAppointmentTime.
type AppointmentPayload struct {
	PatientID           *int64             `json:"patient_id,omitempty"`
	DoctorName          *string            `json:"doctor_name,omitempty"`
	AppointmentDateTime *string            `json:"appointment_datetime,omitempty"`
	Reason              *string            `json:"reason,omitempty"`
	Notes               *string            `json:"notes,omitempty"`
	Status              *AppointmentStatus `json:"status,omitempty"`
}
