package pipeline_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfdash-backend/internal/extraction"
	"pdfdash-backend/internal/pipeline"
)

func newExtractRouter(gen *scriptedGenerator, models []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := pipeline.NewHandler(pipeline.NewService(extraction.NewClient(gen, models, 0)))
	handler.RegisterRoutes(r.Group("/api"))
	return r
}

func postMultipart(t *testing.T, router *gin.Engine, fields map[string]string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if fileContent != nil {
		part, err := writer.CreateFormFile("file", "document.pdf")
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/extract", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestExtractEndpointSuccess(t *testing.T) {
	gen := &scriptedGenerator{
		fn: func(call int, model, prompt string) (string, error) {
			if call == 0 {
				return "Invoice #42 is due for $500.", nil
			}
			return `{"title":"Invoice #42"}`, nil
		},
	}
	router := newExtractRouter(gen, []string{"gemini-pro"})

	resp := postMultipart(t, router, map[string]string{"prompt": "Summarize this invoice."}, []byte("raw pdf bytes"))
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ExtractedText string          `json:"extractedText"`
			ProcessedData json.RawMessage `json:"processedData"`
			Metadata      struct {
				Model string `json:"model"`
			} `json:"metadata"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Invoice #42 is due for $500.", body.Data.ExtractedText)
	assert.JSONEq(t, `{"title":"Invoice #42"}`, string(body.Data.ProcessedData))
	assert.Equal(t, "gemini-pro", body.Data.Metadata.Model)
}

func TestExtractEndpointMissingFile(t *testing.T) {
	gen := &scriptedGenerator{
		fn: func(call int, model, prompt string) (string, error) {
			return "", fmt.Errorf("should not be called")
		},
	}
	router := newExtractRouter(gen, []string{"gemini-pro"})

	resp := postMultipart(t, router, map[string]string{"prompt": "hi"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Empty(t, gen.calls)
}

func TestExtractEndpointProviderExhausted(t *testing.T) {
	gen := &scriptedGenerator{
		fn: func(call int, model, prompt string) (string, error) {
			return "", fmt.Errorf("%s unavailable", model)
		},
	}
	router := newExtractRouter(gen, []string{"gemini-pro", "gemini-1.5-pro"})

	resp := postMultipart(t, router, nil, []byte("raw pdf bytes"))
	require.Equal(t, http.StatusBadGateway, resp.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Failed to extract document", body.Message)
}

func TestExtractEndpointStructuringFailureReturnsRawText(t *testing.T) {
	gen := &scriptedGenerator{
		fn: func(call int, model, prompt string) (string, error) {
			if call == 0 {
				return "extracted summary", nil
			}
			return "", fmt.Errorf("%s overloaded", model)
		},
	}
	router := newExtractRouter(gen, []string{"gemini-pro"})

	resp := postMultipart(t, router, nil, []byte("raw pdf bytes"))
	require.Equal(t, http.StatusBadGateway, resp.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ExtractedText string `json:"extractedText"`
		} `json:"data"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Failed to structure extracted text", body.Message)
	assert.Equal(t, "extracted summary", body.Data.ExtractedText)
}
