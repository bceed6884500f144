package rest

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dtroode/hms-console/internal/logger"
)

// NewTLSConfig returns a client TLS config that trusts the PEM bundle in
// caFile on top of the system roots.
func NewTLSConfig(caFile string) (*tls.Config, error) {
	pem, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA bundle: %w", err)
	}

	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", caFile)
	}

	return &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}, nil
}

// NewHTTPClient builds the HTTP client for the remote service. An empty
// caFile keeps the default transport TLS settings.
func NewHTTPClient(timeout time.Duration, caFile string, logger *logger.Logger) (*http.Client, error) {
	base := http.DefaultTransport.(*http.Transport).Clone()

	if caFile != "" {
		tlsConfig, err := NewTLSConfig(caFile)
		if err != nil {
			return nil, err
		}
		base.TLSClientConfig = tlsConfig
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: NewLoggingTransport(base, logger),
	}, nil
}
