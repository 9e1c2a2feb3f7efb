package records

import (
	"context"
	"errors"
)

// ListQuery selects a page of records, optionally restricted by a search term.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// Repo defines persistence operations for extracted documents.
type Repo interface {
	Create(ctx context.Context, doc ExtractedDocument) error
	GetByID(ctx context.Context, id string) (ExtractedDocument, error)
	List(ctx context.Context, q ListQuery) ([]ExtractedDocument, int, error)
	Update(ctx context.Context, doc ExtractedDocument) error
	Delete(ctx context.Context, id string) error
}

var (
	// ErrNotFound means no record matches the given id.
	ErrNotFound = errors.New("extracted document not found")
	// ErrInvalidInput means a required field is missing or empty.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidID means the id is not a well-formed identifier.
	ErrInvalidID = errors.New("invalid id format")
	// ErrConflict means a uniqueness constraint was violated.
	ErrConflict = errors.New("duplicate extracted document")
)
