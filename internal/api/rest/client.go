package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dtroode/hms-console/internal/logger"
	"github.com/dtroode/hms-console/internal/model"
)

var (
	_ model.PatientAPI     = (*Resource[model.Patient, model.PatientPayload])(nil)
	_ model.AppointmentAPI = (*Resource[model.Appointment, model.AppointmentPayload])(nil)
	_ model.RecordAPI      = (*RecordResource)(nil)
	_ model.HealthChecker  = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// Client talks to the remote resource service. Each call is a single
// request/response round trip with no retry and no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger

	Patients     *Resource[model.Patient, model.PatientPayload]
	Appointments *Resource[model.Appointment, model.AppointmentPayload]
	Records      *RecordResource
}

func NewClient(baseURL string, logger *logger.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: NewLoggingTransport(http.DefaultTransport, logger),
		},
		logger: logger,
	}
	for _, o := range opts {
		o(c)
	}

	c.Patients = &Resource[model.Patient, model.PatientPayload]{client: c, path: "/api/patients"}
	c.Appointments = &Resource[model.Appointment, model.AppointmentPayload]{client: c, path: "/api/appointments"}
	c.Records = &RecordResource{
		Resource: &Resource[model.MedicalRecord, model.RecordPayload]{client: c, path: "/api/records"},
	}

	return c, nil
}

// Health reports whether GET /health answered with a 2xx status.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Readiness is the body of GET /ready.
type Readiness struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Ready queries GET /ready. A not-ready remote answers 503, which is
// returned as a *model.TransportError.
func (c *Client) Ready(ctx context.Context) (Readiness, error) {
	var r Readiness
	if err := c.do(ctx, http.MethodGet, "/ready", nil, &r); err != nil {
		return Readiness{}, err
	}
	return r, nil
}

type envelope[T any] struct {
	Data T `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response of %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &model.TransportError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   raw,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}
	return nil
}
