// Package fakeremote is an in-memory stand-in for the remote resource
// service. It speaks the same HTTP+JSON protocol, cascades patient deletion
// and lets tests inject failures or delays through a hook.
package fakeremote

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/hms-console/internal/model"
)

const timestampLayout = "2006-01-02T15:04:05.000000"

// Hook runs before every handler. A non-nil error is rendered as the
// response instead of calling the handler.
type Hook func(c echo.Context) error

type Server struct {
	*httptest.Server

	mu           sync.Mutex
	patients     []model.Patient
	appointments []model.Appointment
	records      []model.MedicalRecord
	ids          map[string]int64
	healthy      bool
	hook         Hook
	now          func() time.Time
}

// New starts a fake remote. Close it with Server.Close.
func New() *Server {
	s := &Server{
		ids:     map[string]int64{},
		healthy: true,
		now:     func() time.Time { return time.Now().UTC() },
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

func (s *Server) router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Use(s.runHook)

	e.GET("/health", s.health)
	e.GET("/ready", s.ready)

	e.GET("/api/patients", s.listPatients)
	e.POST("/api/patients", s.createPatient)
	e.GET("/api/patients/:id", s.getPatient)
	e.PUT("/api/patients/:id", s.updatePatient)
	e.DELETE("/api/patients/:id", s.deletePatient)

	e.GET("/api/appointments", s.listAppointments)
	e.POST("/api/appointments", s.createAppointment)
	e.PUT("/api/appointments/:id", s.updateAppointment)
	e.DELETE("/api/appointments/:id", s.deleteAppointment)

	e.GET("/api/patients/:id/records", s.listPatientRecords)
	e.POST("/api/records", s.createRecord)
	e.DELETE("/api/records/:id", s.deleteRecord)

	return e
}

// SetHook installs h, replacing any previous hook. A nil h removes it.
func (s *Server) SetHook(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = h
}

// SetHealthy switches GET /health between 200 and 503.
func (s *Server) SetHealthy(healthy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthy = healthy
}

// Counts returns the number of stored patients, appointments and records.
func (s *Server) Counts() (patients, appointments, records int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.patients), len(s.appointments), len(s.records)
}

// SeedPatient stores p with a fresh id and returns it.
func (s *Server) SeedPatient(p model.Patient) model.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID("patient")
	p.CreatedAt, p.UpdatedAt = s.stamp(), s.stamp()
	s.patients = append(s.patients, p)
	return p
}

// SeedAppointment stores a with a fresh id and returns it.
func (s *Server) SeedAppointment(a model.Appointment) model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.nextID("appointment")
	if a.Status == "" {
		a.Status = model.AppointmentScheduled
	}
	a.CreatedAt, a.UpdatedAt = s.stamp(), s.stamp()
	s.appointments = append(s.appointments, a)
	return a
}

// SeedRecord stores r with a fresh id and returns it.
func (s *Server) SeedRecord(r model.MedicalRecord) model.MedicalRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID("record")
	r.CreatedAt, r.UpdatedAt = s.stamp(), s.stamp()
	s.records = append(s.records, r)
	return r
}

func (s *Server) runHook(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		hook := s.hook
		s.mu.Unlock()

		if hook != nil {
			if err := hook(c); err != nil {
				return err
			}
		}
		return next(c)
	}
}

func (s *Server) nextID(table string) int64 {
	s.ids[table]++
	return s.ids[table]
}

func (s *Server) stamp() string {
	return s.now().Format(timestampLayout)
}

type listResponse[T any] struct {
	Success bool   `json:"success"`
	Data    []T    `json:"data"`
	Count   int    `json:"count"`
	Patient string `json:"patient,omitempty"`
}

type itemResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}
	if code == http.StatusNotFound {
		msg = "Resource not found"
	}

	_ = c.JSON(code, map[string]any{"success": false, "error": msg})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound)
	}
	return id, nil
}

func missingField(name string) error {
	return echo.NewHTTPError(http.StatusBadRequest, "Missing required field: "+name)
}

func (s *Server) health(c echo.Context) error {
	s.mu.Lock()
	healthy := s.healthy
	s.mu.Unlock()

	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": s.now().Format(timestampLayout),
		"service":   "healthcare-api",
	})
}

func (s *Server) ready(c echo.Context) error {
	s.mu.Lock()
	healthy := s.healthy
	s.mu.Unlock()

	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":   "not ready",
			"database": "disconnected",
			"error":    "database unavailable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready", "database": "connected"})
}
