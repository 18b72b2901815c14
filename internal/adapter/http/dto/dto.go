package dto

import (
	"time"

	"carbon-bazar/internal/core/domain"
)

// LoginRequest is the request body for opening a session.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for a successful login.
type LoginResponse struct {
	Session SessionResponse `json:"session"`
	Token   string          `json:"token"`
	Expiry  int64           `json:"expiry"` // Unix timestamp
}

// SessionResponse is the client view of a session.
type SessionResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	DisplayName      string `json:"display_name"`
	CreditBalance    int64  `json:"credit_balance"`
	TransactionCount int64  `json:"transaction_count"`
}

// NewSessionResponse maps a domain session to its client view.
func NewSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		ID:               s.ID.String(),
		Email:            s.Identity.Email,
		DisplayName:      s.Identity.DisplayName,
		CreditBalance:    s.CreditBalance,
		TransactionCount: s.TransactionCount,
	}
}

// ListingResponse is the client view of a catalog listing.
type ListingResponse struct {
	ID               string  `json:"id"`
	ProjectName      string  `json:"project_name"`
	Location         string  `json:"location"`
	AvailableCredits int64   `json:"available_credits"`
	PricePerCredit   float64 `json:"price_per_credit"`
	Verified         bool    `json:"verified"`
	ImageRef         string  `json:"image_ref"`
}

// NewListingResponse maps a domain listing to its client view.
func NewListingResponse(l *domain.Listing) ListingResponse {
	return ListingResponse{
		ID:               l.ID,
		ProjectName:      l.ProjectName,
		Location:         l.Location,
		AvailableCredits: l.AvailableCredits,
		PricePerCredit:   l.PricePerCredit,
		Verified:         l.Verified,
		ImageRef:         l.ImageRef,
	}
}

// MarketStatResponse is one marketplace headline figure.
type MarketStatResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PurchaseRequest is the request body for buying credits.
type PurchaseRequest struct {
	ListingID string `json:"listing_id" binding:"required,max=100,safe_id"`
	Credits   int64  `json:"credits" binding:"required,gt=0"`
}

// PurchaseResponse is the response body for a completed purchase.
type PurchaseResponse struct {
	Record  ActivityEntry   `json:"record"`
	Session SessionResponse `json:"session"`
	Listing ListingResponse `json:"listing"`
}

// ActivityEntry is one row of profile activity. Placeholder rows are
// illustrative only and carry no ID or order.
type ActivityEntry struct {
	ID            string `json:"id,omitempty"`
	Kind          string `json:"kind"`
	ProjectName   string `json:"project_name"`
	Credits       int64  `json:"credits"`
	OccurredOrder int64  `json:"occurred_order,omitempty"`
	OccurredAt    string `json:"occurred_at,omitempty"`
	Placeholder   bool   `json:"placeholder"`
}

// NewActivityEntry maps a ledger record to an activity row.
func NewActivityEntry(r *domain.TransactionRecord) ActivityEntry {
	return ActivityEntry{
		ID:            r.ID.String(),
		Kind:          string(r.Kind),
		ProjectName:   r.ProjectName,
		Credits:       r.Credits,
		OccurredOrder: r.OccurredOrder,
		OccurredAt:    r.OccurredAt.UTC().Format(time.RFC3339),
	}
}

// ActivityResponse wraps a profile's recent activity.
type ActivityResponse struct {
	Entries []ActivityEntry `json:"entries"`
}

// NavigationResponse is the route guard's verdict for a route.
type NavigationResponse struct {
	Route      string `json:"route"`
	Allow      bool   `json:"allow"`
	RedirectTo string `json:"redirect_to,omitempty"`
}
