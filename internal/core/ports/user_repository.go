package ports

import (
	"context"

	"github.com/ucetportal/campus-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts and their role
// profiles.
type UserRepository interface {
	// FindByIdentifier matches the identifier against username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts the user and its role profile as a single atomic unit.
	// A username or email collision yields domain.ErrUserExists; the store's
	// unique indexes are the final arbiter under concurrent registration.
	Create(ctx context.Context, user *domain.User, profile *domain.Profile) (*domain.User, error)
	// List returns all users, newest first. Password hashes are populated;
	// the service strips them before anything leaves the core.
	List(ctx context.Context) ([]*domain.User, error)
}
