package domain

import (
	"fmt"
	"time"
)

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

func ParseUserStatus(s string) (UserStatus, error) {
	switch UserStatus(s) {
	case UserActive, UserInactive, UserSuspended:
		return UserStatus(s), nil
	default:
		return "", fmt.Errorf("unknown user status %q", s)
	}
}

// CanSignIn reports whether a user in this status may start a session.
func (s UserStatus) CanSignIn() bool {
	switch s {
	case UserActive:
		return true
	case UserInactive, UserSuspended:
		return false
	default:
		return false
	}
}

type User struct {
	ID           string // ULID
	Username     string
	DisplayName  string
	Email        string
	RoleID       int64
	Status       UserStatus
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Label is the name shown in the UI.
func (u User) Label() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
