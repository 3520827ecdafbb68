package domain

import "time"

// Role classifies an account for authorization decisions.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
	// RoleUnknown is the state before role lookup resolves. No authorization
	// gate accepts it.
	RoleUnknown Role = "unknown"
)

// User is an authentication account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile holds the display identity attached to an account.
type Profile struct {
	UserID   string
	Username string
	FullName string
}
