package records

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pdfdash-backend/internal/shared/server/respond"
)

const maxBodyBytes = 1 << 20 // 1MB; original texts can be large

// Handler wires HTTP handlers to the record store service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches extracted-data routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extracted-data", h.create)
	rg.GET("/extracted-data", h.list)
	rg.GET("/extracted-data/:id", h.get)
	rg.PUT("/extracted-data/:id", h.update)
	rg.DELETE("/extracted-data/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Failed to create extracted data", "invalid request body")
		return
	}

	doc, err := h.Svc.Create(c.Request.Context(), CreateInput{
		Title:        req.Title,
		Summary:      req.Summary,
		KeyPoints:    req.KeyPoints,
		Date:         req.Date,
		Author:       req.Author,
		OriginalText: req.OriginalText,
		Metadata:     req.Metadata,
	})
	if err != nil {
		h.writeError(c, "Failed to create extracted data", err)
		return
	}
	respond.Created(c, doc)
}

func (h *Handler) list(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", defaultLimit)

	result, err := h.Svc.List(c.Request.Context(), ListQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	})
	if err != nil {
		h.writeError(c, "Failed to fetch extracted data", err)
		return
	}
	respond.List(c, result.Records, paginationResponse{
		Total: result.Total,
		Page:  result.Page,
		Pages: result.Pages,
		Limit: result.Limit,
	})
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "Failed to fetch extracted data", err)
		return
	}
	respond.OK(c, doc)
}

func (h *Handler) update(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Failed to update extracted data", "invalid request body")
		return
	}

	doc, err := h.Svc.Update(c.Request.Context(), c.Param("id"), UpdateInput{
		Title:        req.Title,
		Summary:      req.Summary,
		KeyPoints:    req.KeyPoints,
		Date:         req.Date,
		Author:       req.Author,
		OriginalText: req.OriginalText,
		Metadata:     req.Metadata,
	})
	if err != nil {
		h.writeError(c, "Failed to update extracted data", err)
		return
	}
	respond.OK(c, doc)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "Failed to delete extracted data", err)
		return
	}
	respond.Message(c, "Extracted data deleted successfully")
}

func (h *Handler) writeError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidID):
		respond.Error(c, http.StatusBadRequest, message, err.Error())
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "Extracted data not found", err.Error())
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, message, "a document with this title already exists")
	default:
		respond.Error(c, http.StatusInternalServerError, message, err.Error())
	}
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 {
		return def
	}
	return val
}
