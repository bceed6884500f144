package rest

import (
	"net/http"
	"time"

	"github.com/dtroode/hms-console/internal/logger"
)

// LoggingTransport is an http.RoundTripper that logs outgoing requests and
// their results.
type LoggingTransport struct {
	next   http.RoundTripper
	logger *logger.Logger
}

// NewLoggingTransport wraps next. A nil next uses http.DefaultTransport.
func NewLoggingTransport(next http.RoundTripper, logger *logger.Logger) *LoggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &LoggingTransport{next: next, logger: logger}
}

// RoundTrip logs method, path, duration and status for each request.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	t.logger.Debug("HTTP request started",
		"method", req.Method,
		"path", req.URL.Path)

	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Error("HTTP request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", duration.Milliseconds(),
			"error", err.Error())
		return nil, err
	}

	level := t.logger.Debug
	if resp.StatusCode >= http.StatusBadRequest {
		level = t.logger.Warn
	}
	level("HTTP request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"duration_ms", duration.Milliseconds(),
		"status", resp.StatusCode)

	return resp, nil
}
