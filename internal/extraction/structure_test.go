package extraction

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructureParsesJSONResponse(t *testing.T) {
	gen := &fakeGenerator{
		fn: func(model, prompt string) (string, error) {
			return `{"title":"Invoice #42","amount":500}`, nil
		},
	}
	client := NewClient(gen, []string{"model-a"}, 0)

	result, err := client.Structure(context.Background(), "some text", "")
	require.NoError(t, err)

	assert.True(t, result.Data.IsParsed())
	var fields map[string]any
	require.NoError(t, json.Unmarshal(result.Data.Parsed, &fields))
	assert.Equal(t, "Invoice #42", fields["title"])
	assert.Equal(t, "model-a", result.Metadata.Model)
	assert.Zero(t, result.Metadata.CharactersProcessed)
}

func TestStructureDegradesToRawTextOnInvalidJSON(t *testing.T) {
	gen := &fakeGenerator{
		fn: func(model, prompt string) (string, error) {
			return "Sure! Here is the extracted information you asked for.", nil
		},
	}
	client := NewClient(gen, []string{"model-a"}, 0)

	result, err := client.Structure(context.Background(), "some text", "")
	require.NoError(t, err)

	assert.False(t, result.Data.IsParsed())
	encoded, err := json.Marshal(result.Data)
	require.NoError(t, err)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(encoded, &payload))
	assert.Equal(t, "Sure! Here is the extracted information you asked for.", payload["extractedText"])
}

func TestStructureIncludesSchemaSketchInPrompt(t *testing.T) {
	gen := &fakeGenerator{
		fn: func(model, prompt string) (string, error) {
			return `{}`, nil
		},
	}
	client := NewClient(gen, []string{"model-a"}, 0)

	_, err := client.Structure(context.Background(), "some text", "title, amount, due date")
	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "title, amount, due date")
	assert.Contains(t, gen.prompts[0], "some text")
}

func TestStructureFallsBackAcrossModels(t *testing.T) {
	gen := &fakeGenerator{
		fn: func(model, prompt string) (string, error) {
			if model == "model-b" {
				return `{"ok":true}`, nil
			}
			return "", assert.AnError
		},
	}
	client := NewClient(gen, []string{"model-a", "model-b"}, 0)

	result, err := client.Structure(context.Background(), "text", "")
	require.NoError(t, err)
	assert.Equal(t, "model-b", result.Metadata.Model)
	assert.Equal(t, []string{"model-a", "model-b"}, gen.calls)
}
