package pipeline_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfdash-backend/internal/extraction"
	"pdfdash-backend/internal/pipeline"
	"pdfdash-backend/internal/records"
)

type scriptedGenerator struct {
	calls []string
	fn    func(call int, model, prompt string) (string, error)
}

func (g *scriptedGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	g.calls = append(g.calls, model)
	return g.fn(len(g.calls)-1, model, prompt)
}

func TestRunExtractsStructuresAndPersists(t *testing.T) {
	gen := &scriptedGenerator{
		fn: func(call int, model, prompt string) (string, error) {
			if call == 0 {
				return "Invoice #42 is due on 2024-01-01 for $500.", nil
			}
			return `{"title":"Invoice #42","summary":"Payment due","keyPoints":["$500 due"],"author":"","date":"2024-01-01"}`, nil
		},
	}
	svc := pipeline.NewService(extraction.NewClient(gen, []string{"gemini-pro"}, 0))

	result, err := svc.Run(context.Background(), []byte("Invoice #42, dated 2024-01-01, due $500"), "", "")
	require.NoError(t, err)

	assert.Equal(t, "Invoice #42 is due on 2024-01-01 for $500.", result.ExtractedText)
	require.True(t, result.ProcessedData.IsParsed())

	var fields struct {
		Title     string   `json:"title"`
		Summary   string   `json:"summary"`
		KeyPoints []string `json:"keyPoints"`
	}
	require.NoError(t, json.Unmarshal(result.ProcessedData.Parsed, &fields))
	assert.Equal(t, "Invoice #42", fields.Title)

	// The structured output is what the dashboard saves via the record store.
	store := records.NewService(records.NewMemoryRepo())
	saved, err := store.Create(context.Background(), records.CreateInput{
		Title:        fields.Title,
		Summary:      fields.Summary,
		KeyPoints:    fields.KeyPoints,
		OriginalText: result.ExtractedText,
		Metadata: &records.Metadata{
			Model:               result.Metadata.Model,
			Timestamp:           result.Metadata.Timestamp,
			CharactersProcessed: result.Metadata.CharactersProcessed,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Invoice #42", saved.Title)
	assert.Equal(t, "gemini-pro", saved.Metadata.Model)

	fetched, err := store.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Invoice #42", fetched.Title)
}

func TestRunExtractionFailureShortCircuits(t *testing.T) {
	gen := &scriptedGenerator{
		fn: func(call int, model, prompt string) (string, error) {
			return "", fmt.Errorf("%s unavailable", model)
		},
	}
	models := []string{"gemini-pro", "gemini-1.5-pro"}
	svc := pipeline.NewService(extraction.NewClient(gen, models, 0))

	result, err := svc.Run(context.Background(), []byte("text"), "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, extraction.ErrProviderExhausted)
	assert.Empty(t, result.ExtractedText)
	// Structuring is never attempted: only the extraction pass touched the models.
	assert.Len(t, gen.calls, len(models))
}

func TestRunStructuringFailureReturnsPartialResult(t *testing.T) {
	gen := &scriptedGenerator{
		fn: func(call int, model, prompt string) (string, error) {
			if call == 0 {
				return "extracted summary", nil
			}
			return "", fmt.Errorf("%s overloaded", model)
		},
	}
	svc := pipeline.NewService(extraction.NewClient(gen, []string{"gemini-pro"}, 0))

	result, err := svc.Run(context.Background(), []byte("text"), "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, extraction.ErrProviderExhausted)
	assert.Equal(t, "extracted summary", result.ExtractedText)
	assert.Equal(t, "gemini-pro", result.Metadata.Model)
	assert.False(t, result.ProcessedData.IsParsed())
	assert.Empty(t, result.ProcessedData.RawText)
}
