package model

import (
	"github.com/google/uuid"
)

// RoleAdmin is the only role an operator can hold.
const RoleAdmin = "admin"

// User represents a locally registered operator with authentication material.
// Password holds a bcrypt hash and never leaves the credential store.
type User struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     string    `json:"role"`
}

// Session returns the password-stripped projection of the user.
func (u User) Session() Session {
	return Session{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
