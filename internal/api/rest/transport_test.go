package rest

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/hms-console/internal/logger"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestLoggingTransport(t *testing.T) {
	tests := []struct {
		name      string
		next      roundTripFunc
		wantErr   bool
		wantLevel string
		wantAttrs []string
	}{
		{
			name: "success",
			next: func(r *http.Request) (*http.Response, error) {
				rec := httptest.NewRecorder()
				rec.WriteHeader(http.StatusOK)
				return rec.Result(), nil
			},
			wantLevel: "level=DEBUG",
			wantAttrs: []string{"status=200", "path=/api/patients", "method=GET"},
		},
		{
			name: "client error",
			next: func(r *http.Request) (*http.Response, error) {
				rec := httptest.NewRecorder()
				rec.WriteHeader(http.StatusNotFound)
				return rec.Result(), nil
			},
			wantLevel: "level=WARN",
			wantAttrs: []string{"status=404"},
		},
		{
			name: "network error",
			next: func(r *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			wantErr:   true,
			wantLevel: "level=ERROR",
			wantAttrs: []string{`error="connection refused"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tr := NewLoggingTransport(tt.next, logger.NewWithFormat(&buf, -4, "text"))

			req, err := http.NewRequest(http.MethodGet, "http://remote/api/patients", nil)
			require.NoError(t, err)

			resp, err := tr.RoundTrip(req)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				resp.Body.Close()
			}

			out := buf.String()
			assert.Contains(t, out, tt.wantLevel)
			for _, attr := range tt.wantAttrs {
				assert.Contains(t, out, attr)
			}
		})
	}
}
