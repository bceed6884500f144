package model

// MedicalRecord is a diagnosis entry owned by a patient.
//
// PatientName is derived by the aggregation loader from the patient the
// record was fetched under. It is never persisted nor sent to the remote.
type MedicalRecord struct {
	ID           int64   `json:"id"`
	PatientID    int64   `json:"patient_id"`
	Diagnosis    string  `json:"diagnosis"`
	Prescription *string `json:"prescription"`
	DoctorName   string  `json:"doctor_name"`
	RecordDate   string  `json:"record_date"`
	Notes        *string `json:"notes"`
	CreatedAt    string  `json:"created_at,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`

	PatientName string `json:"-"`
}

// RecordPayload is the body of a medical record create request.
type RecordPayload struct {
	PatientID    *int64  `json:"patient_id,omitempty"`
	Diagnosis    *string `json:"diagnosis,omitempty"`
	Prescription *string `json:"prescription,omitempty"`
	DoctorName   *string `json:"doctor_name,omitempty"`
	RecordDate   *string `json:"record_date,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}
