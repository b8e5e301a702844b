package models

import "time"

// User represents a registered account
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Not serialized
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials is the request body of register and login
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by register and login
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Identity is the authenticated caller, reconstructed from a verified token
type Identity struct {
	ID       int64
	Username string
}
