// Package response centralizes the HTTP envelope this service guarantees
// to its consumers. Every call it proxies, whatever the backend's native
// shape, is rewrapped into exactly {success, data, error, status} so the
// frontend only ever parses one contract.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfside/boardgame-tracker/internal/form"
	"github.com/shelfside/boardgame-tracker/internal/store"
	"github.com/shelfside/boardgame-tracker/internal/upstream"
)

// Envelope is the canonical response shape.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Status  int    `json:"status"`
}

// MapError converts a domain error into an HTTP status and message.
// Extend here as new error categories emerge.
func MapError(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}
	switch {
	case errors.Is(err, form.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, store.ErrNoPendingDelete):
		return http.StatusConflict, err.Error()
	case errors.Is(err, upstream.ErrNetwork):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, upstream.ErrMalformed):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, upstream.ErrUpstream):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// WriteData writes a successful envelope.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data, Status: status})
}

// WriteError writes a failed envelope and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, msg := MapError(err)
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: msg, Status: status})
}

// WriteResult rewraps a transport outcome. Upstream failures keep their
// original status code when one was obtained; transport-level failures
// surface as a bad gateway.
func WriteResult(c *gin.Context, res upstream.Result) {
	if res.OK {
		var data any
		if len(res.Data) > 0 {
			data = json.RawMessage(res.Data)
		}
		WriteData(c, res.Status, data)
		return
	}
	status := res.Status
	if status == 0 {
		status = http.StatusBadGateway
	}
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: res.Message, Status: status})
}
