package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/hms-console/internal/model"
)

// PatientAPI mocks model.PatientAPI.
type PatientAPI struct {
	mock.Mock
}

func (m *PatientAPI) List(ctx context.Context) ([]model.Patient, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Patient), args.Error(1)
}

func (m *PatientAPI) Get(ctx context.Context, id int64) (model.Patient, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Patient), args.Error(1)
}

func (m *PatientAPI) Create(ctx context.Context, payload model.PatientPayload) (model.Patient, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(model.Patient), args.Error(1)
}

func (m *PatientAPI) Update(ctx context.Context, id int64, payload model.PatientPayload) (model.Patient, error) {
	args := m.Called(ctx, id, payload)
	return args.Get(0).(model.Patient), args.Error(1)
}

func (m *PatientAPI) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// AppointmentAPI mocks model.AppointmentAPI.
type AppointmentAPI struct {
	mock.Mock
}

func (m *AppointmentAPI) List(ctx context.Context) ([]model.Appointment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Appointment), args.Error(1)
}

func (m *AppointmentAPI) Get(ctx context.Context, id int64) (model.Appointment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Appointment), args.Error(1)
}

func (m *AppointmentAPI) Create(ctx context.Context, payload model.AppointmentPayload) (model.Appointment, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(model.Appointment), args.Error(1)
}

func (m *AppointmentAPI) Update(ctx context.Context, id int64, payload model.AppointmentPayload) (model.Appointment, error) {
	args := m.Called(ctx, id, payload)
	return args.Get(0).(model.Appointment), args.Error(1)
}

func (m *AppointmentAPI) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// RecordAPI mocks model.RecordAPI.
type RecordAPI struct {
	mock.Mock
}

func (m *RecordAPI) List(ctx context.Context) ([]model.MedicalRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.MedicalRecord), args.Error(1)
}

func (m *RecordAPI) Get(ctx context.Context, id int64) (model.MedicalRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.MedicalRecord), args.Error(1)
}

func (m *RecordAPI) Create(ctx context.Context, payload model.RecordPayload) (model.MedicalRecord, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(model.MedicalRecord), args.Error(1)
}

func (m *RecordAPI) Update(ctx context.Context, id int64, payload model.RecordPayload) (model.MedicalRecord, error) {
	args := m.Called(ctx, id, payload)
	return args.Get(0).(model.MedicalRecord), args.Error(1)
}

func (m *RecordAPI) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RecordAPI) ListByPatient(ctx context.Context, patientID int64) ([]model.MedicalRecord, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).([]model.MedicalRecord), args.Error(1)
}

// HealthChecker mocks model.HealthChecker.
type HealthChecker struct {
	mock.Mock
}

func (m *HealthChecker) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
