package handler

import (
	"carbon-bazar/internal/adapter/http/dto"
	"carbon-bazar/internal/core/ports"
	"carbon-bazar/pkg/response"

	"github.com/gin-gonic/gin"
)

// MarketplaceHandler serves the public catalog.
type MarketplaceHandler struct {
	catalogSvc ports.CatalogService
}

// NewMarketplaceHandler creates a new MarketplaceHandler.
func NewMarketplaceHandler(catalogSvc ports.CatalogService) *MarketplaceHandler {
	return &MarketplaceHandler{catalogSvc: catalogSvc}
}

// Listings handles GET /api/v1/marketplace/listings.
func (h *MarketplaceHandler) Listings(c *gin.Context) {
	listings, err := h.catalogSvc.Listings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.ListingResponse, 0, len(listings))
	for i := range listings {
		out = append(out, dto.NewListingResponse(&listings[i]))
	}
	response.OK(c, gin.H{"listings": out})
}

// Listing handles GET /api/v1/marketplace/listings/:id.
func (h *MarketplaceHandler) Listing(c *gin.Context) {
	listing, err := h.catalogSvc.Listing(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewListingResponse(listing))
}

// Stats handles GET /api/v1/marketplace/stats.
func (h *MarketplaceHandler) Stats(c *gin.Context) {
	stats, err := h.catalogSvc.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.MarketStatResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.MarketStatResponse{Label: s.Label, Value: s.Value})
	}
	response.OK(c, gin.H{"stats": out})
}
