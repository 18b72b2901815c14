package handler

import (
	"carbon-bazar/internal/adapter/http/dto"
	"carbon-bazar/internal/adapter/http/middleware"
	"carbon-bazar/internal/core/ports"
	"carbon-bazar/pkg/response"

	"github.com/gin-gonic/gin"
)

// NavigationHandler exposes the route guard's verdicts so clients can
// decide navigation before rendering a page.
type NavigationHandler struct {
	guard ports.RouteGuard
}

// NewNavigationHandler creates a new NavigationHandler.
func NewNavigationHandler(guard ports.RouteGuard) *NavigationHandler {
	return &NavigationHandler{guard: guard}
}

// CanEnter handles GET /api/v1/navigation/:route.
func (h *NavigationHandler) CanEnter(c *gin.Context) {
	route := c.Param("route")
	session, _ := middleware.SessionFromContext(c)

	decision := h.guard.CanEnter(route, session)
	response.OK(c, dto.NavigationResponse{
		Route:      route,
		Allow:      decision.Allow,
		RedirectTo: decision.RedirectTo,
	})
}
