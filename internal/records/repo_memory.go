package records

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database
// is configured and by tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	seq  int
}

type memoryEntry struct {
	doc ExtractedDocument
	seq int
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]memoryEntry)}
}

// Create stores a new record.
func (r *MemoryRepo) Create(ctx context.Context, doc ExtractedDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.data[doc.ID]; exists {
		return ErrConflict
	}
	r.seq++
	r.data[doc.ID] = memoryEntry{doc: doc, seq: r.seq}
	return nil
}

// GetByID returns the record with the given id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (ExtractedDocument, error) {
	if err := ctx.Err(); err != nil {
		return ExtractedDocument{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.data[id]
	if !ok {
		return ExtractedDocument{}, ErrNotFound
	}
	return entry.doc, nil
}

// List returns a page of records newest-first, filtered by a substring
// match over title, summary and original text when a search term is set.
func (r *MemoryRepo) List(ctx context.Context, q ListQuery) ([]ExtractedDocument, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	entries := make([]memoryEntry, 0, len(r.data))
	for _, entry := range r.data {
		if q.Search == "" || matches(entry.doc, q.Search) {
			entries = append(entries, entry)
		}
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].doc.CreatedAt.Equal(entries[j].doc.CreatedAt) {
			return entries[i].doc.CreatedAt.After(entries[j].doc.CreatedAt)
		}
		return entries[i].seq > entries[j].seq
	})

	total := len(entries)
	offset := (q.Page - 1) * q.Limit
	if offset >= total {
		return []ExtractedDocument{}, total, nil
	}
	end := offset + q.Limit
	if end > total {
		end = total
	}
	out := make([]ExtractedDocument, 0, end-offset)
	for _, entry := range entries[offset:end] {
		out = append(out, entry.doc)
	}
	return out, total, nil
}

// Update overwrites an existing record.
func (r *MemoryRepo) Update(ctx context.Context, doc ExtractedDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.data[doc.ID]
	if !ok {
		return ErrNotFound
	}
	entry.doc = doc
	r.data[doc.ID] = entry
	return nil
}

// Delete removes a record permanently.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func matches(doc ExtractedDocument, term string) bool {
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(doc.Title), needle) ||
		strings.Contains(strings.ToLower(doc.Summary), needle) ||
		strings.Contains(strings.ToLower(doc.OriginalText), needle)
}

var _ Repo = (*MemoryRepo)(nil)
