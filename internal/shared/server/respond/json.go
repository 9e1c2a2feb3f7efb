package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the JSON wrapper used by every API response.
type Envelope struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
	Pagination any    `json:"pagination,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 envelope carrying data.
func OK(c *gin.Context, data any) {
	JSON(c, http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 envelope carrying data.
func Created(c *gin.Context, data any) {
	JSON(c, http.StatusCreated, Envelope{Success: true, Data: data})
}

// List writes a 200 envelope carrying data plus pagination info.
func List(c *gin.Context, data any, pagination any) {
	JSON(c, http.StatusOK, Envelope{Success: true, Data: data, Pagination: pagination})
}

// Message writes a 200 envelope carrying only a confirmation message.
func Message(c *gin.Context, message string) {
	JSON(c, http.StatusOK, Envelope{Success: true, Message: message})
}
