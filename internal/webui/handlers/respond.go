// Package handlers contains the gin handlers for the HTTP API. Every
// response uses the APIResponse envelope; domain errors from the store and
// import layers are mapped to HTTP status codes in one place.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"alquimia/internal/app"
)

// APIResponse is the envelope shared by all API endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK writes a successful envelope with the given payload.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// Created writes a 201 envelope with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// Fail maps a domain error to its HTTP status and writes an error envelope.
func Fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), APIResponse{Success: false, Error: err.Error()})
}

// FailStatus writes an error envelope with an explicit status.
func FailStatus(c *gin.Context, status int, msg string) {
	c.JSON(status, APIResponse{Success: false, Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, app.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrConfigMissing):
		return http.StatusServiceUnavailable
	case errors.Is(err, app.ErrExternal):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
