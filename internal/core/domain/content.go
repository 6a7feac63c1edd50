package domain

import "time"

// Content collection names. Each maps to its own store collection; the
// payload field differs (news carries content, resources carry a link).
const (
	CollectionNews      = "news"
	CollectionResources = "resources"
)

// ContentRecord is one admin-managed item in a content collection.
// Body holds the collection's payload field: the article text for news,
// the URL for resources.
type ContentRecord struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
