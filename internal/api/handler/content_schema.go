package handler

import (
	"time"

	"github.com/ucetportal/campus-api/internal/core/domain"
)

type newsRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
}

type resourceRequest struct {
	Title string `json:"title" validate:"required"`
	Link  string `json:"link"  validate:"required,url"`
}

// contentResponse renders a record with the payload under the collection's
// own field: content for news, link for resources.
type contentResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content,omitempty"`
	Link          string    `json:"link,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toContentResponse(rec *domain.ContentRecord, collection string) contentResponse {
	resp := contentResponse{
		ID:            rec.ID,
		Title:         rec.Title,
		CreatedBy:     rec.CreatedBy,
		CreatedByName: rec.CreatedByName,
		CreatedAt:     rec.CreatedAt.UTC(),
	}
	if collection == domain.CollectionResources {
		resp.Link = rec.Body
	} else {
		resp.Content = rec.Body
	}
	return resp
}

func toContentListResponse(records []*domain.ContentRecord, collection string) []contentResponse {
	out := make([]contentResponse, len(records))
	for i, rec := range records {
		out[i] = toContentResponse(rec, collection)
	}
	return out
}
