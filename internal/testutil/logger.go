// Package testutil holds helpers shared by package tests.
package testutil

import (
	"io"

	"github.com/dtroode/hms-console/internal/logger"
)

// MakeNoopLogger returns a logger that discards every record.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithFormat(io.Discard, -8, "text")
}
