package records

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultAuthor = "Unknown"
	defaultLimit  = 10
	maxLimit      = 100
)

// CreateInput carries the fields accepted when creating a record.
type CreateInput struct {
	Title        string
	Summary      string
	KeyPoints    []string
	Date         *time.Time
	Author       string
	OriginalText string
	Metadata     *Metadata
}

// UpdateInput carries a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Title        *string
	Summary      *string
	KeyPoints    *[]string
	Date         *time.Time
	Author       *string
	OriginalText *string
	Metadata     *Metadata
}

// ListResult is a page of records plus pagination info.
type ListResult struct {
	Records []ExtractedDocument
	Total   int
	Page    int
	Pages   int
	Limit   int
}

// Service implements record store semantics on top of a Repo.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// NewServiceWithClock constructs a Service with an injected clock for tests.
func NewServiceWithClock(repo Repo, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{Repo: repo, now: now}
}

// Create validates input, fills defaults and persists a new record.
func (s *Service) Create(ctx context.Context, in CreateInput) (ExtractedDocument, error) {
	now := s.now().UTC()

	doc := ExtractedDocument{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(in.Title),
		Summary:      strings.TrimSpace(in.Summary),
		KeyPoints:    trimEach(in.KeyPoints),
		Date:         now,
		Author:       strings.TrimSpace(in.Author),
		OriginalText: strings.TrimSpace(in.OriginalText),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Date != nil {
		doc.Date = in.Date.UTC()
	}
	if doc.Author == "" {
		doc.Author = defaultAuthor
	}
	if in.Metadata != nil {
		doc.Metadata = *in.Metadata
	}

	if err := validate(doc); err != nil {
		return ExtractedDocument{}, err
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return ExtractedDocument{}, err
	}
	return doc, nil
}

// List returns a page of records ordered newest-first, optionally filtered
// by a free-text search term over title, summary and original text.
func (s *Service) List(ctx context.Context, q ListQuery) (ListResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	q.Search = strings.TrimSpace(q.Search)

	docs, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return ListResult{}, err
	}
	pages := 0
	if total > 0 {
		pages = (total + q.Limit - 1) / q.Limit
	}
	return ListResult{
		Records: docs,
		Total:   total,
		Page:    q.Page,
		Pages:   pages,
		Limit:   q.Limit,
	}, nil
}

// GetByID returns the record with the given id.
func (s *Service) GetByID(ctx context.Context, id string) (ExtractedDocument, error) {
	if err := validateID(id); err != nil {
		return ExtractedDocument{}, err
	}
	return s.Repo.GetByID(ctx, id)
}

// Update merges the provided fields onto the stored record, refreshes
// updatedAt and re-validates required fields. Fields absent from the input
// are left unchanged.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (ExtractedDocument, error) {
	if err := validateID(id); err != nil {
		return ExtractedDocument{}, err
	}
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return ExtractedDocument{}, err
	}

	if in.Title != nil {
		doc.Title = strings.TrimSpace(*in.Title)
	}
	if in.Summary != nil {
		doc.Summary = strings.TrimSpace(*in.Summary)
	}
	if in.KeyPoints != nil {
		doc.KeyPoints = trimEach(*in.KeyPoints)
	}
	if in.Date != nil {
		doc.Date = in.Date.UTC()
	}
	if in.Author != nil {
		doc.Author = strings.TrimSpace(*in.Author)
		if doc.Author == "" {
			doc.Author = defaultAuthor
		}
	}
	if in.OriginalText != nil {
		doc.OriginalText = strings.TrimSpace(*in.OriginalText)
	}
	if in.Metadata != nil {
		doc.Metadata = *in.Metadata
	}
	doc.UpdatedAt = s.now().UTC()

	if err := validate(doc); err != nil {
		return ExtractedDocument{}, err
	}
	if err := s.Repo.Update(ctx, doc); err != nil {
		return ExtractedDocument{}, err
	}
	return doc, nil
}

// Delete permanently removes the record. Deleting an already-deleted id
// fails with ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func validate(doc ExtractedDocument) error {
	if doc.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if doc.Summary == "" {
		return fmt.Errorf("%w: summary is required", ErrInvalidInput)
	}
	if doc.OriginalText == "" {
		return fmt.Errorf("%w: originalText is required", ErrInvalidInput)
	}
	return nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

func trimEach(points []string) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
