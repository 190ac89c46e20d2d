package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput creates a new shopper account
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// LoginInput authenticates a shopper
type LoginInput struct {
	Email    string
	Password string
}

// RefreshTokenInput exchanges a refresh token for a new pair
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput revokes the current session's tokens
type LogoutInput struct {
	UserID    uuid.UUID
	AccessJTI string
	AccessTTL time.Duration
}

// ChangePasswordInput changes the shopper's password
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UserInfo is the account as returned to clients
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	IsStaff     bool       `json:"is_staff"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// AuthResult is returned from register, login and refresh
type AuthResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}
