package pipeline

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"pdfdash-backend/internal/extraction"
	"pdfdash-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler exposes the extraction pipeline over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches pipeline routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract", h.extract)
}

func (h *Handler) extract(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Failed to extract document", "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Failed to extract document", "unable to read file")
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Failed to extract document", "unable to read file")
		return
	}

	result, err := h.Svc.Run(c.Request.Context(), fileBytes, c.PostForm("prompt"), c.PostForm("schema"))
	if err != nil {
		if !errors.Is(err, extraction.ErrProviderExhausted) {
			respond.Error(c, http.StatusInternalServerError, "Failed to extract document", err.Error())
			return
		}
		if result.ExtractedText != "" {
			// Extraction worked but structuring exhausted every model;
			// hand the raw text back with the failure.
			respond.ErrorWithData(c, http.StatusBadGateway, "Failed to structure extracted text", err.Error(), gin.H{
				"extractedText": result.ExtractedText,
				"metadata":      result.Metadata,
			})
			return
		}
		respond.Error(c, http.StatusBadGateway, "Failed to extract document", err.Error())
		return
	}

	respond.OK(c, result)
}
