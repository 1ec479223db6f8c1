package models

import (
	"time"
)

// User defines the identity record backing the 'users' table. Exactly one
// role profile (Student or Parent) exists per user, created in the same
// transaction at registration.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // hashed, excluded from JSON
	RoleType  RoleType  `json:"role" db:"role_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
