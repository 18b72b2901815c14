package handler

import (
	"carbon-bazar/internal/adapter/http/dto"
	"carbon-bazar/internal/adapter/http/middleware"
	"carbon-bazar/internal/core/ports"
	"carbon-bazar/pkg/apperror"
	"carbon-bazar/pkg/response"

	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles credit purchases.
type PurchaseHandler struct {
	purchaseSvc ports.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseSvc ports.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseSvc: purchaseSvc}
}

// Purchase handles POST /api/v1/purchases.
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrNotAuthenticated())
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.purchaseSvc.Purchase(c.Request.Context(), ports.PurchaseRequest{
		SessionID: sessionID,
		ListingID: req.ListingID,
		Credits:   req.Credits,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.CountPurchase(result.Record.Credits)

	response.Created(c, dto.PurchaseResponse{
		Record:  dto.NewActivityEntry(result.Record),
		Session: dto.NewSessionResponse(result.Session),
		Listing: dto.NewListingResponse(result.Listing),
	})
}
