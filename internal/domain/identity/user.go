package identity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/indolink/backend/internal/domain/shared"
)

// User represents a registered account (seller, admin or buyer)
type User struct {
	shared.BaseAggregateRoot
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	Role         Role   `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with an already-hashed password
func NewUser(username, email, passwordHash string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) > 50 {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 50 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be one of ADMIN, SELLER, BUYER")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             strings.ToLower(email),
		PasswordHash:      passwordHash,
		Role:              role,
	}, nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}
