package ports

import (
	"context"

	"github.com/ucetportal/campus-api/internal/core/domain"
)

// CreateContentInput carries the data for a new content record. CreatorID and
// CreatorName come from the verified token claims, never the request body.
type CreateContentInput struct {
	Title       string
	Body        string
	CreatorID   string
	CreatorName string
}

// ContentService defines the use-case operations on one content collection.
// Role enforcement happens in the middleware chain; the service assumes the
// caller was already authorized.
type ContentService interface {
	List(ctx context.Context) ([]*domain.ContentRecord, error)
	Create(ctx context.Context, in CreateContentInput) (*domain.ContentRecord, error)
	Update(ctx context.Context, id, title, body string) error
	Delete(ctx context.Context, id string) error
}
