package models

import "time"

// User is the account record. The password hash must never appear in any
// serialized representation; the email is included only on self-facing
// endpoints (register, login, me).
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
