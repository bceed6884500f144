package model

import (
	"github.com/google/uuid"
)

// Session is the client-held representation of the authenticated operator.
// It has no password field, so it can not leak one when serialized.
type Session struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
	Token string    `json:"token,omitempty"`
}

// IsZero reports whether s is the empty session.
func (s Session) IsZero() bool {
	return s.ID == uuid.Nil
}
