package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/hms-console/internal/model"
)

// Storage mocks model.Storage.
type Storage struct {
	mock.Mock
}

func (m *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Storage) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// SessionSigner mocks model.SessionSigner.
type SessionSigner struct {
	mock.Mock
}

func (m *SessionSigner) SignSession(session model.Session) (string, error) {
	args := m.Called(session)
	return args.String(0), args.Error(1)
}

func (m *SessionSigner) VerifySession(token string) (model.Session, error) {
	args := m.Called(token)
	return args.Get(0).(model.Session), args.Error(1)
}
