package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pdfdash-backend/internal/llm"
	"pdfdash-backend/internal/shared/telemetry"
)

const defaultMaxPromptChars = 30000

// ErrProviderExhausted means every candidate model failed. The wrapped
// error is the final candidate's failure.
var ErrProviderExhausted = errors.New("no working model found")

// Client runs generation against an ordered list of candidate models,
// returning the first success. Candidates are tried strictly sequentially
// and the list is re-walked from the start on every call.
type Client struct {
	gen      llm.Generator
	models   []string
	maxChars int
	now      func() time.Time
}

// NewClient constructs a Client. models is the candidate priority order;
// maxChars bounds how much document text is sent per request.
func NewClient(gen llm.Generator, models []string, maxChars int) *Client {
	if maxChars <= 0 {
		maxChars = defaultMaxPromptChars
	}
	return &Client{
		gen:      gen,
		models:   models,
		maxChars: maxChars,
		now:      time.Now,
	}
}

// Extract reads the uploaded bytes as plain text and asks the first working
// candidate model to extract and summarize it. Content beyond the character
// limit is silently dropped.
//
// The upload is treated as raw text even when it is a binary PDF, matching
// the dashboard's behavior; real PDF text extraction would need a parsing
// dependency and is out of scope here.
func (c *Client) Extract(ctx context.Context, fileBytes []byte, prompt string) (Result, error) {
	documentText := string(fileBytes)
	truncated := documentText
	if len(truncated) > c.maxChars {
		truncated = truncated[:c.maxChars]
	}

	text, model, err := c.generateWithFallback(ctx, extractionPrompt(prompt, truncated))
	if err != nil {
		return Result{}, err
	}
	return Result{
		ExtractedText: text,
		Metadata: Metadata{
			Model:               model,
			Timestamp:           c.now().UTC().Format(time.RFC3339),
			CharactersProcessed: len(documentText),
		},
	}, nil
}

// Structure asks the first working candidate model to re-express text as
// JSON matching schemaSketch (a free-form field description). A reply that
// is not valid JSON degrades to a raw-text payload instead of failing.
func (c *Client) Structure(ctx context.Context, text, schemaSketch string) (StructuredResult, error) {
	reply, model, err := c.generateWithFallback(ctx, structuringPrompt(text, schemaSketch))
	if err != nil {
		return StructuredResult{}, err
	}

	payload := StructuredPayload{RawText: reply}
	if trimmed := strings.TrimSpace(reply); json.Valid([]byte(trimmed)) {
		payload = StructuredPayload{Parsed: json.RawMessage(trimmed)}
	}
	return StructuredResult{
		Data: payload,
		Metadata: Metadata{
			Model:     model,
			Timestamp: c.now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// generateWithFallback walks the candidate list in order and returns the
// first successful output plus the model that produced it. Per-candidate
// failures are logged and swallowed; only exhaustion is an error.
func (c *Client) generateWithFallback(ctx context.Context, prompt string) (string, string, error) {
	var lastErr error
	for _, model := range c.models {
		text, err := c.gen.Generate(ctx, model, prompt)
		if err != nil {
			telemetry.Warn("extraction.model_failed", map[string]any{
				"model": model,
				"error": err.Error(),
			})
			lastErr = err
			continue
		}
		telemetry.Info("extraction.model_succeeded", map[string]any{"model": model})
		return text, model, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no candidate models configured")
	}
	return "", "", fmt.Errorf("%w: last error: %w", ErrProviderExhausted, lastErr)
}
