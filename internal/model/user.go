package model

import "time"

// User is an administrative account for the back office.  Guests never
// have accounts; they are identified by their invite token alone.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – login email, stored lower-cased.
//  PasswordHash – bcrypt hashed password.
//  Role         – account role; only ADMIN is issued today.
//  IsActive     – soft-disable flag for revoking access.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
