package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotFound is returned by storage when a key is absent.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned by signup when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned by login when no user matches.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// TransportError is returned by the remote client for any non-2xx response.
// Body is the raw response body, unmodified.
type TransportError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message())
}

// Message returns the human readable part of the error: the remote's
// "error" field when the body is its JSON error envelope, otherwise the
// trimmed body, otherwise the status text.
func (e *TransportError) Message() string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}

	if body := strings.TrimSpace(string(e.Body)); body != "" && !strings.HasPrefix(body, "{") && !strings.HasPrefix(body, "<") {
		return body
	}

	return http.StatusText(e.Status)
}

// PatientFetchError describes a per-patient record fetch that failed during
// aggregation. It is collected and logged, never propagated.
type PatientFetchError struct {
	PatientID   int64
	PatientName string
	Err         error
}

func (e PatientFetchError) Error() string {
	return fmt.Sprintf("failed to load records of patient %d: %v", e.PatientID, e.Err)
}

func (e PatientFetchError) Unwrap() error {
	return e.Err
}

// ErrorMessage converts err into text suitable for operator feedback.
func ErrorMessage(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Message()
	}
	return err.Error()
}
