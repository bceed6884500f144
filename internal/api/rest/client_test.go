package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/hms-console/internal/model"
	"github.com/dtroode/hms-console/internal/testutil"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/", testutil.MakeNoopLogger())
	require.NoError(t, err)
	return c
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:5000", "ftp://host", "http://"} {
		_, err := NewClient(raw, testutil.MakeNoopLogger())
		assert.Error(t, err, raw)
	}
}

func TestResource_List(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/patients", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		io.WriteString(w, `{"success":true,"count":2,"data":[
			{"id":1,"name":"P1","date_of_birth":"1990-01-01","email":"p1@x.com","phone":null},
			{"id":2,"name":"P2","date_of_birth":"1991-02-02","email":"p2@x.com","phone":"555"}]}`)
	})
	mux.HandleFunc("GET /api/appointments", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":[]}`)
	})

	c := newTestClient(t, mux)

	patients, err := c.Patients.List(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "P1", patients[0].Name)
	assert.Nil(t, patients[0].Phone)
	assert.Equal(t, "555", model.Deref(patients[1].Phone))

	appointments, err := c.Appointments.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, appointments)
	assert.Empty(t, appointments)
}

func TestResource_Create(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/appointments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"patient_id":           float64(1),
			"doctor_name":          "Dr. House",
			"appointment_datetime": "2024-03-01 14:30:00",
		}, body)

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"data":{"id":7,"patient_id":1,"doctor_name":"Dr. House",
			"appointment_datetime":"2024-03-01T14:30:00","status":"scheduled"},"message":"Appointment created successfully"}`)
	})

	c := newTestClient(t, mux)

	pid := int64(1)
	appt, err := c.Appointments.Create(context.Background(), model.AppointmentPayload{
		PatientID:           &pid,
		DoctorName:          model.Optional("Dr. House"),
		AppointmentDateTime: model.Optional("2024-03-01 14:30:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), appt.ID)
	assert.Equal(t, model.AppointmentScheduled, appt.Status)
}

func TestResource_GetUpdateDelete(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/patients/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.PathValue("id"))
		io.WriteString(w, `{"success":true,"data":{"id":3,"name":"P3"}}`)
	})
	mux.HandleFunc("PUT /api/patients/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"phone": "555"}, body)
		io.WriteString(w, `{"success":true,"data":{"id":3,"name":"P3","phone":"555"}}`)
	})
	var deleted bool
	mux.HandleFunc("DELETE /api/records/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = r.PathValue("id") == "9"
		io.WriteString(w, `{"success":true,"message":"Medical record deleted successfully"}`)
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	p, err := c.Patients.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "P3", p.Name)

	p, err = c.Patients.Update(ctx, 3, model.PatientPayload{Phone: model.Optional("555")})
	require.NoError(t, err)
	assert.Equal(t, "555", model.Deref(p.Phone))

	require.NoError(t, c.Records.Delete(ctx, 9))
	assert.True(t, deleted)
}

func TestRecordResource_ListByPatient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/patients/{id}/records", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.PathValue("id"))
		io.WriteString(w, `{"success":true,"patient":"P1","count":1,"data":[{"id":5,"patient_id":1,"diagnosis":"Flu","doctor_name":"Dr. House","record_date":"2024-01-02"}]}`)
	})

	c := newTestClient(t, mux)

	records, err := c.Records.ListByPatient(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Flu", records[0].Diagnosis)
	assert.Empty(t, records[0].PatientName)
}

func TestClient_TransportError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "remote error envelope",
			status:      http.StatusBadRequest,
			body:        `{"success":false,"error":"Missing required field: email"}`,
			wantMessage: "Missing required field: email",
		},
		{
			name:        "html error page",
			status:      http.StatusMethodNotAllowed,
			body:        `<!doctype html><title>405 Method Not Allowed</title>`,
			wantMessage: "Method Not Allowed",
		},
		{
			name:        "empty body",
			status:      http.StatusInternalServerError,
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("POST /api/patients", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			c := newTestClient(t, mux)

			_, err := c.Patients.Create(context.Background(), model.PatientPayload{Name: model.Optional("P1")})
			require.Error(t, err)

			var te *model.TransportError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tt.status, te.Status)
			assert.Equal(t, tt.body, string(te.Body))
			assert.Equal(t, "/api/patients", te.Path)
			assert.Equal(t, tt.wantMessage, model.ErrorMessage(err))
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := NewClient(srv.URL, testutil.MakeNoopLogger())
	require.NoError(t, err)

	_, err = c.Patients.List(context.Background())
	require.Error(t, err)
	var te *model.TransportError
	assert.False(t, errors.As(err, &te))
	assert.Contains(t, err.Error(), "failed to GET /api/patients")
}

func TestClient_MalformedBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/patients", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	})
	c := newTestClient(t, mux)

	_, err := c.Patients.List(context.Background())
	require.ErrorContains(t, err, "failed to decode response")
}

func TestClient_HealthAndReady(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"healthy","service":"healthcare-api"}`)
	})
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"status":"not ready","database":"disconnected","error":"connection refused"}`)
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	_, err := c.Ready(ctx)
	var te *model.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusServiceUnavailable, te.Status)
	assert.Equal(t, "connection refused", te.Message())
}

func TestClient_Ready(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"ready","database":"connected"}`)
	})
	c := newTestClient(t, mux)

	r, err := c.Ready(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Readiness{Status: "ready", Database: "connected"}, r)
}
