package handlers

import (
	"errors"
	"net/http"

	tl "todo_list"

	"github.com/gin-gonic/gin"
)

// Common response messages to avoid magic strings and typos.
const (
	statusOK = "ok"

	msgRegistered   = "user registered"
	msgLoggedIn     = "logged in"
	msgLoggedOut    = "logged out"
	msgTodoCreated  = "todo created"
	msgTodoDeleted  = "todo deleted"
	errInternal     = "internal error"
	errInvalidCreds = "invalid credentials"
	errNotAuth      = "not authenticated"
	errInvalidID    = "invalid todo id"
	errMissingField = "missing fields: "
)

// statusFor maps a service error onto the HTTP status it is reported with.
func statusFor(err error) int {
	switch {
	case tl.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, tl.ErrDuplicateUsername):
		return http.StatusBadRequest
	case errors.Is(err, tl.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tl.ErrInvalidCredentials), errors.Is(err, tl.ErrUnauthenticated):
		return http.StatusUnauthorized
	case tl.IsPersistence(err, tl.KindDuplicate), tl.IsPersistence(err, tl.KindForeignKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the part of err that is safe to show to the client.
func publicMessage(err error) string {
	var ve *tl.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, tl.ErrDuplicateUsername):
		return tl.ErrDuplicateUsername.Error()
	case errors.Is(err, tl.ErrNotFound):
		return "todo not found"
	case errors.Is(err, tl.ErrInvalidCredentials):
		return errInvalidCreds
	case errors.Is(err, tl.ErrUnauthenticated):
		return errNotAuth
	case tl.IsPersistence(err, tl.KindForeignKey):
		return "referenced user does not exist"
	case tl.IsPersistence(err, tl.KindDuplicate):
		return "already exists"
	default:
		return errInternal
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(ctxRequestID)}, kv...)
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError reports a service error with the status and message statusFor and
// publicMessage pick for it.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	h.logAndJSONError(c, statusFor(err), publicMessage(err), logKey, err, kv...)
}
