package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres. Free-text search runs against a
// generated tsvector over title, summary and original text.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, title, summary, key_points, date, author, original_text, metadata, created_at, updated_at`

// Create inserts a new record.
func (r *PGRepo) Create(ctx context.Context, doc ExtractedDocument) error {
	const query = `
INSERT INTO extracted_documents (
    id,
    title,
    summary,
    key_points,
    date,
    author,
    original_text,
    metadata,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	keyPoints, metadata, err := marshalJSONFields(doc)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.Title,
		doc.Summary,
		keyPoints,
		doc.Date,
		doc.Author,
		doc.OriginalText,
		metadata,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// GetByID fetches a record by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (ExtractedDocument, error) {
	query := `
SELECT ` + documentColumns + `
FROM extracted_documents
WHERE id = $1`

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExtractedDocument{}, ErrNotFound
		}
		return ExtractedDocument{}, err
	}
	return doc, nil
}

// List returns a page of records ordered by created_at descending, plus the
// total matching count.
func (r *PGRepo) List(ctx context.Context, q ListQuery) ([]ExtractedDocument, int, error) {
	where := ""
	args := []any{}
	if q.Search != "" {
		where = `WHERE search_vector @@ plainto_tsquery('english', $1)`
		args = append(args, q.Search)
	}

	countQuery := `SELECT COUNT(*) FROM extracted_documents ` + where
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	listQuery := fmt.Sprintf(`
SELECT `+documentColumns+`
FROM extracted_documents
%s
ORDER BY created_at DESC
LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, q.Limit, offset)

	rows, err := r.DB.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []ExtractedDocument{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, doc)
	}
	return out, total, rows.Err()
}

// Update overwrites all mutable fields of an existing record.
func (r *PGRepo) Update(ctx context.Context, doc ExtractedDocument) error {
	const query = `
UPDATE extracted_documents
SET title = $2,
    summary = $3,
    key_points = $4,
    date = $5,
    author = $6,
    original_text = $7,
    metadata = $8,
    updated_at = $9
WHERE id = $1`

	keyPoints, metadata, err := marshalJSONFields(doc)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.Title,
		doc.Summary,
		keyPoints,
		doc.Date,
		doc.Author,
		doc.OriginalText,
		metadata,
		doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record permanently.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM extracted_documents WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (ExtractedDocument, error) {
	var doc ExtractedDocument
	var keyPoints, metadata []byte
	if err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Summary,
		&keyPoints,
		&doc.Date,
		&doc.Author,
		&doc.OriginalText,
		&metadata,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return ExtractedDocument{}, err
	}
	if len(keyPoints) > 0 {
		if err := json.Unmarshal(keyPoints, &doc.KeyPoints); err != nil {
			return ExtractedDocument{}, fmt.Errorf("decode key_points: %w", err)
		}
	}
	if doc.KeyPoints == nil {
		doc.KeyPoints = []string{}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
			return ExtractedDocument{}, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return doc, nil
}

func marshalJSONFields(doc ExtractedDocument) ([]byte, []byte, error) {
	points := doc.KeyPoints
	if points == nil {
		points = []string{}
	}
	keyPoints, err := json.Marshal(points)
	if err != nil {
		return nil, nil, fmt.Errorf("encode key_points: %w", err)
	}
	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return nil, nil, fmt.Errorf("encode metadata: %w", err)
	}
	return keyPoints, metadata, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Repo = (*PGRepo)(nil)
