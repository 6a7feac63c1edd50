package ports

import (
	"context"
	"time"

	"github.com/ucetportal/campus-api/internal/core/domain"
)

// UserSummary is the hash-free view of an account returned by ListUsers.
type UserSummary struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// LoginResult carries the token and the minimal profile fields returned on a
// successful login. Never includes the password hash.
type LoginResult struct {
	Token    string
	Role     domain.Role
	Username string
	Email    string
}

// AuthService defines registration, login, and account listing.
type AuthService interface {
	// Register creates a new identity and returns its id.
	Register(ctx context.Context, username, email, password, role string) (string, error)
	// Login authenticates identifier (username or email) + password. When
	// assertedRole is non-empty it must match the stored role.
	Login(ctx context.Context, identifier, password, assertedRole string) (*LoginResult, error)
	ListUsers(ctx context.Context) ([]UserSummary, error)
}
