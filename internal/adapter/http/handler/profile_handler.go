package handler

import (
	"strconv"

	"carbon-bazar/internal/adapter/http/dto"
	"carbon-bazar/internal/adapter/http/middleware"
	"carbon-bazar/internal/core/ports"
	"carbon-bazar/pkg/apperror"
	"carbon-bazar/pkg/response"

	"github.com/gin-gonic/gin"
)

const defaultActivityLimit = 10

// ProfileHandler serves the signed-in user's profile and activity.
type ProfileHandler struct {
	sessionSvc ports.SessionService
	ledgerSvc  ports.LedgerService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(sessionSvc ports.SessionService, ledgerSvc ports.LedgerService) *ProfileHandler {
	return &ProfileHandler{sessionSvc: sessionSvc, ledgerSvc: ledgerSvc}
}

// Profile handles GET /api/v1/profile.
func (h *ProfileHandler) Profile(c *gin.Context) {
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

// Activity handles GET /api/v1/profile/activity?limit=N.
// A ledger with no real purchases yet falls back to illustrative
// placeholder rows; they are flagged as such and never mix with real
// records.
func (h *ProfileHandler) Activity(c *gin.Context) {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrNotAuthenticated())
		return
	}

	limit := defaultActivityLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, apperror.Validation("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	records, err := h.ledgerSvc.RecentActivity(c.Request.Context(), sessionID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	entries := make([]dto.ActivityEntry, 0, len(records))
	for i := range records {
		entries = append(entries, dto.NewActivityEntry(&records[i]))
	}

	if len(entries) == 0 {
		for _, p := range h.ledgerSvc.PlaceholderActivity(limit) {
			entries = append(entries, dto.ActivityEntry{
				Kind:        "PURCHASE",
				ProjectName: p.ProjectName,
				Credits:     p.Credits,
				Placeholder: true,
			})
		}
	}

	response.OK(c, dto.ActivityResponse{Entries: entries})
}
