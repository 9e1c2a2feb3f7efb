package pipeline

import (
	"context"

	"pdfdash-backend/internal/extraction"
)

// Result merges raw extraction output with structured data, ready for
// hand-off to the record store.
type Result struct {
	ExtractedText string                       `json:"extractedText"`
	ProcessedData extraction.StructuredPayload `json:"processedData"`
	Metadata      extraction.Metadata          `json:"metadata"`
}

// Service composes extraction and structuring. It performs no persistence;
// saving is a separate, caller-initiated step so the user can review first.
type Service struct {
	Extractor *extraction.Client
}

// NewService constructs a Service.
func NewService(extractor *extraction.Client) *Service {
	return &Service{Extractor: extractor}
}

// Run extracts text from the uploaded bytes, then structures it. An
// extraction failure short-circuits; a structuring failure still returns
// the successful extraction as a partial result alongside the error.
func (s *Service) Run(ctx context.Context, fileBytes []byte, prompt, schemaSketch string) (Result, error) {
	extracted, err := s.Extractor.Extract(ctx, fileBytes, prompt)
	if err != nil {
		return Result{}, err
	}

	structured, err := s.Extractor.Structure(ctx, extracted.ExtractedText, schemaSketch)
	if err != nil {
		return Result{
			ExtractedText: extracted.ExtractedText,
			Metadata:      extracted.Metadata,
		}, err
	}

	return Result{
		ExtractedText: extracted.ExtractedText,
		ProcessedData: structured.Data,
		Metadata:      extracted.Metadata,
	}, nil
}
