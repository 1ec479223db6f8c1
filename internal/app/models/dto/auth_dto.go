package dto

import "github.com/kzhao/applytrack/internal/app/models"

// RegisterRequest represents the user registration payload. Role selects
// the profile kind; ParentStudentEmail optionally links a new parent to an
// existing student in the same registration transaction.
type RegisterRequest struct {
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required"`
	Role               string `json:"role" binding:"required"`
	Name               string `json:"name" binding:"required"`
	GraduationYear     *int   `json:"graduationYear,omitempty"`
	ParentStudentEmail string `json:"parentStudentEmail,omitempty"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthUser is the identity portion of an auth response.
type AuthUser struct {
	ID      int64           `json:"id"`
	Email   string          `json:"email"`
	Role    models.RoleType `json:"role"`
	Profile interface{}     `json:"profile,omitempty"`
}

// AuthResponse carries the signed token plus the authenticated identity.
// The same token is also set as an HTTP-only cookie by the controller.
type AuthResponse struct {
	Token     string   `json:"token"`
	TokenType string   `json:"tokenType"`
	ExpiresIn int64    `json:"expiresIn"`
	User      AuthUser `json:"user"`
}
