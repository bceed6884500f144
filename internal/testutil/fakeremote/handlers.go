package fakeremote

import (
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/hms-console/internal/model"
)

func (s *Server) listPatients(c echo.Context) error {
	s.mu.Lock()
	data := slices.Clone(s.patients)
	s.mu.Unlock()

	return c.JSON(http.StatusOK, listResponse[model.Patient]{Success: true, Data: nonNil(data), Count: len(data)})
}

func (s *Server) getPatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.patientIndex(id)
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, itemResponse[model.Patient]{Success: true, Data: s.patients[i]})
}

func (s *Server) createPatient(c echo.Context) error {
	var body model.PatientPayload
	if err := c.Bind(&body); err != nil {
		return err
	}

	switch {
	case body.Name == nil:
		return missingField("name")
	case body.DateOfBirth == nil:
		return missingField("date_of_birth")
	case body.Email == nil:
		return missingField("email")
	}
	if err := model.ValidateDate(*body.DateOfBirth); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.patients {
		if p.Email == *body.Email {
			return echo.NewHTTPError(http.StatusInternalServerError, "UNIQUE constraint failed: patient.email")
		}
	}

	p := model.Patient{
		ID:          s.nextID("patient"),
		Name:        *body.Name,
		DateOfBirth: *body.DateOfBirth,
		Email:       *body.Email,
		Phone:       body.Phone,
		Address:     body.Address,
		BloodGroup:  body.BloodGroup,
		CreatedAt:   s.stamp(),
		UpdatedAt:   s.stamp(),
	}
	s.patients = append(s.patients, p)

	return c.JSON(http.StatusCreated, itemResponse[model.Patient]{Success: true, Data: p, Message: "Patient created successfully"})
}

func (s *Server) updatePatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var body model.PatientPayload
	if err := c.Bind(&body); err != nil {
		return err
	}
	if body.DateOfBirth != nil {
		if err := model.ValidateDate(*body.DateOfBirth); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.patientIndex(id)
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	p := &s.patients[i]
	setString(&p.Name, body.Name)
	setString(&p.Email, body.Email)
	setString(&p.DateOfBirth, body.DateOfBirth)
	if body.Phone != nil {
		p.Phone = body.Phone
	}
	if body.Address != nil {
		p.Address = body.Address
	}
	if body.BloodGroup != nil {
		p.BloodGroup = body.BloodGroup
	}
	p.UpdatedAt = s.stamp()

	return c.JSON(http.StatusOK, itemResponse[model.Patient]{Success: true, Data: *p, Message: "Patient updated successfully"})
}

func (s *Server) deletePatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.patientIndex(id)
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	s.patients = slices.Delete(s.patients, i, i+1)
	s.appointments = slices.DeleteFunc(s.appointments, func(a model.Appointment) bool { return a.PatientID == id })
	s.records = slices.DeleteFunc(s.records, func(r model.MedicalRecord) bool { return r.PatientID == id })

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Patient deleted successfully"})
}

func (s *Server) listAppointments(c echo.Context) error {
	s.mu.Lock()
	data := slices.Clone(s.appointments)
	s.mu.Unlock()

	return c.JSON(http.StatusOK, listResponse[model.Appointment]{Success: true, Data: nonNil(data), Count: len(data)})
}

func (s *Server) createAppointment(c echo.Context) error {
	var body model.AppointmentPayload
	if err := c.Bind(&body); err != nil {
		return err
	}

	switch {
	case body.PatientID == nil:
		return missingField("patient_id")
	case body.DoctorName == nil:
		return missingField("doctor_name")
	case body.AppointmentDateTime == nil:
		return missingField("appointment_datetime")
	}
	when, err := time.Parse(model.RemoteDateTimeLayout, *body.AppointmentDateTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.patientIndex(*body.PatientID) < 0 {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	status := model.AppointmentScheduled
	if body.Status != nil {
		status = *body.Status
	}

	a := model.Appointment{
		ID:                  s.nextID("appointment"),
		PatientID:           *body.PatientID,
		DoctorName:          *body.DoctorName,
		AppointmentDateTime: when.Format("2006-01-02T15:04:05"),
		Reason:              body.Reason,
		Notes:               body.Notes,
		Status:              status,
		CreatedAt:           s.stamp(),
		UpdatedAt:           s.stamp(),
	}
	s.appointments = append(s.appointments, a)

	return c.JSON(http.StatusCreated, itemResponse[model.Appointment]{Success: true, Data: a, Message: "Appointment created successfully"})
}

func (s *Server) updateAppointment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var body model.AppointmentPayload
	if err := c.Bind(&body); err != nil {
		return err
	}

	var when time.Time
	if body.AppointmentDateTime != nil {
		when, err = time.Parse(model.RemoteDateTimeLayout, *body.AppointmentDateTime)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.appointments, func(a model.Appointment) bool { return a.ID == id })
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	// only status, notes and datetime are updatable
	a := &s.appointments[i]
	if body.Status != nil {
		a.Status = *body.Status
	}
	if body.Notes != nil {
		a.Notes = body.Notes
	}
	if body.AppointmentDateTime != nil {
		a.AppointmentDateTime = when.Format("2006-01-02T15:04:05")
	}
	a.UpdatedAt = s.stamp()

	return c.JSON(http.StatusOK, itemResponse[model.Appointment]{Success: true, Data: *a, Message: "Appointment updated successfully"})
}

func (s *Server) deleteAppointment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.appointments, func(a model.Appointment) bool { return a.ID == id })
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	s.appointments = slices.Delete(s.appointments, i, i+1)

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Appointment deleted successfully"})
}

func (s *Server) listPatientRecords(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.patientIndex(id)
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	var data []model.MedicalRecord
	for _, r := range s.records {
		if r.PatientID == id {
			data = append(data, r)
		}
	}

	return c.JSON(http.StatusOK, listResponse[model.MedicalRecord]{
		Success: true,
		Patient: s.patients[i].Name,
		Data:    nonNil(data),
		Count:   len(data),
	})
}

func (s *Server) createRecord(c echo.Context) error {
	var body model.RecordPayload
	if err := c.Bind(&body); err != nil {
		return err
	}

	switch {
	case body.PatientID == nil:
		return missingField("patient_id")
	case body.Diagnosis == nil:
		return missingField("diagnosis")
	case body.DoctorName == nil:
		return missingField("doctor_name")
	}

	recordDate := s.now().Format(model.DateLayout)
	if body.RecordDate != nil {
		if err := model.ValidateDate(*body.RecordDate); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		recordDate = *body.RecordDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.patientIndex(*body.PatientID) < 0 {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	r := model.MedicalRecord{
		ID:           s.nextID("record"),
		PatientID:    *body.PatientID,
		Diagnosis:    *body.Diagnosis,
		Prescription: body.Prescription,
		DoctorName:   *body.DoctorName,
		RecordDate:   recordDate,
		Notes:        body.Notes,
		CreatedAt:    s.stamp(),
		UpdatedAt:    s.stamp(),
	}
	s.records = append(s.records, r)

	return c.JSON(http.StatusCreated, itemResponse[model.MedicalRecord]{Success: true, Data: r, Message: "Medical record created successfully"})
}

func (s *Server) deleteRecord(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.records, func(r model.MedicalRecord) bool { return r.ID == id })
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	s.records = slices.Delete(s.records, i, i+1)

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Medical record deleted successfully"})
}

func (s *Server) patientIndex(id int64) int {
	return slices.IndexFunc(s.patients, func(p model.Patient) bool { return p.ID == id })
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
