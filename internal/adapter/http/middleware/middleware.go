package middleware

import (
	"net/http"
	"time"

	"carbon-bazar/internal/core/domain"
	"carbon-bazar/internal/core/ports"
	"carbon-bazar/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// Context keys
	CtxSessionID  = "session_id"
	CtxSessionKey = "session"

	loginLocation = "/" + domain.RouteLogin
)

// BearerAuth resolves the caller's session from a Bearer token and
// attaches it to the request context. It never rejects: anonymous
// requests pass through with no session attached, and the guard or the
// handler decides what that means for the route.
func BearerAuth(tokenSvc ports.TokenService, store ports.SessionStore, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.Next()
			return
		}

		claims, err := tokenSvc.Validate(authHeader[7:])
		if err != nil {
			log.Debug().Err(err).Msg("bearer token rejected")
			c.Next()
			return
		}

		session, err := store.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			log.Error().Err(err).Msg("session lookup failed")
			c.Next()
			return
		}
		if session == nil {
			// Valid token for a closed session (logout already happened).
			c.Next()
			return
		}

		c.Set(CtxSessionID, session.ID)
		c.Set(CtxSessionKey, session)
		c.Next()
	}
}

// SessionGuard enforces authentication on guarded routes. Denied
// visitors are silently redirected to the login page: no error body,
// no explanation, exactly like the in-app navigation guard.
func SessionGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CtxSessionID); !exists {
			response.Redirect(c, loginLocation)
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionFromContext retrieves the attached session, if any.
func SessionFromContext(c *gin.Context) (*domain.Session, bool) {
	v, exists := c.Get(CtxSessionKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*domain.Session)
	return session, ok
}

// SessionIDFromContext retrieves the attached session ID, if any.
func SessionIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(CtxSessionID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// MaxBodySize limits request body size to protect against oversized payloads.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
