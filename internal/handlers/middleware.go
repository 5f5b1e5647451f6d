package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Gin context keys.
const (
	ctxUserID    = "userId"
	ctxRequestID = "requestId"

	headerRequestID = "X-Request-ID"
)

// authMiddleware accepts either a bearer token or a cookie session carrying the
// user id. A malformed or invalid Authorization header is rejected even when a
// valid session cookie is also present.
func (h *Handler) authMiddleware(c *gin.Context) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}

		userId, err := h.services.ParseToken(parts[1])
		if err != nil {
			h.log.Infow("auth_token_rejected", "err", err, "request_id", c.GetString(ctxRequestID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(ctxUserID, userId)
		c.Next()
		return
	}

	userId, ok := sessions.Default(c).Get(sessionUserKey).(uint)
	if !ok || userId == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": errNotAuth,
		})
		return
	}

	// store in Gin context
	c.Set(ctxUserID, userId)
	c.Next()
}

// currentUserID returns the id put in the context by authMiddleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// requestID tags each request with the caller's X-Request-ID or a fresh UUID.
func (h *Handler) requestID(c *gin.Context) {
	id := c.GetHeader(headerRequestID)
	if id == "" || len(id) > 64 {
		id = uuid.NewString()
	}
	c.Set(ctxRequestID, id)
	c.Header(headerRequestID, id)
	c.Next()
}

// accessLog writes one line per request once the handler chain has finished.
func (h *Handler) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()

	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency_ms", time.Since(start).Milliseconds(),
		"client_ip", c.ClientIP(),
		"request_id", c.GetString(ctxRequestID),
	)
}
