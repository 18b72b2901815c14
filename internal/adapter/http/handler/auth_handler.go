package handler

import (
	"net/http"

	"carbon-bazar/internal/adapter/http/dto"
	"carbon-bazar/internal/adapter/http/middleware"
	"carbon-bazar/internal/core/ports"
	"carbon-bazar/pkg/apperror"
	"carbon-bazar/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles session lifecycle endpoints.
type AuthHandler struct {
	sessionSvc ports.SessionService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessionSvc ports.SessionService) *AuthHandler {
	return &AuthHandler{sessionSvc: sessionSvc}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.sessionSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.LoginResponse{
		Session: dto.NewSessionResponse(result.Session),
		Token:   result.Token,
		Expiry:  result.ExpiresAt.Unix(),
	})
}

// Logout handles POST /api/v1/auth/logout. Logging out without a
// session succeeds: the end state is the same either way.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		response.OK(c, gin.H{"logged_out": true})
		return
	}

	if err := h.sessionSvc.Logout(c.Request.Context(), sessionID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"logged_out": true})
}

// CurrentSession handles GET /api/v1/session.
func (h *AuthHandler) CurrentSession(c *gin.Context) {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrNotAuthenticated())
		return
	}

	session, err := h.sessionSvc.CurrentSession(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewSessionResponse(session))
}

// HealthCheck handles GET /health — deep health check verifying all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
