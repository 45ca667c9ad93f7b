// Package domain contains entities without logic, just meta-data.
package domain

import (
	"errors"

	"github.com/google/uuid"
)

const (
	MaxUserIDLen   = 36
	MaxUsernameLen = 36
)

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

type UserID string

// Role separates the two sides of a consultation call.
type Role string

const (
	RoleStudent Role = "student"
	RoleExpert  Role = "expert"
)

type User struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role,omitempty"`
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewUser(username string, role Role) (*User, error) {
	if len(username) == 0 {
		return nil, ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return nil, ErrUsernameTooLong
	}
	id := UserID(uuid.NewString())
	return &User{ID: id, Username: username, Role: role}, nil
}

func (u *User) SetUsername(username string) error {
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	u.Username = username
	return nil
}
