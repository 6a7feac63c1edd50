package ports

import (
	"context"

	"github.com/ucetportal/campus-api/internal/core/domain"
)

// ContentRepository defines persistence for one content collection (news or
// resources). One instance exists per collection.
type ContentRepository interface {
	// List returns every record, newest first.
	List(ctx context.Context) ([]*domain.ContentRecord, error)
	Create(ctx context.Context, rec *domain.ContentRecord) (*domain.ContentRecord, error)
	// Update and Delete report domain.ErrRecordNotFound when no record with
	// the given id exists (zero rows affected).
	Update(ctx context.Context, id, title, body string) error
	Delete(ctx context.Context, id string) error
}
