package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/indolink/backend/internal/domain/identity"
)

// RegisterRequest is the input for creating an account. Only seller and
// buyer accounts self-register; admin accounts are seeded.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,marketrole"`
}

// LoginRequest is the input for authenticating
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the API representation of an account
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

// AuthResponse carries the issued token and the authenticated account
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ToUserResponse converts a domain user to its response form
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role.String(),
	}
}
