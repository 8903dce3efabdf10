package models

import (
	"time"
)

// User represents a registered user. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Username length constraints, enforced before any store access
const (
	MinUsernameLen = 3
	MaxUsernameLen = 50
	MinPasswordLen = 6
)

// AdminUsername is the bootstrap administrator account created on an
// empty store.
const AdminUsername = "admin"

// PublicUser is the user shape returned to clients
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Public converts a User into its client-facing representation
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}

// CredentialsRequest is the request body for register and login
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned on successful register and login
type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
