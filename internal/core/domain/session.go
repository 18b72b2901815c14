package domain

import (
	"time"

	"github.com/google/uuid"
)

// Route names known to the navigation guard.
const (
	RouteHome        = "home"
	RouteMarketplace = "marketplace"
	RouteLogin       = "login"
	RouteProfile     = "profile"
)

// Identity is the authenticated user behind a session.
type Identity struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Session is the authenticated state tracked per user. CreditBalance,
// TransactionCount and Records move together: a recorded purchase updates
// all three in one step or none at all.
type Session struct {
	ID               uuid.UUID           `json:"id"`
	Identity         Identity            `json:"identity"`
	CreditBalance    int64               `json:"credit_balance"`
	TransactionCount int64               `json:"transaction_count"`
	Records          []TransactionRecord `json:"records"`
	CreatedAt        time.Time           `json:"created_at"`
}

// Authenticated reports whether the session carries a signed-in identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.Identity.Email != ""
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// mutate shared state outside a store operation.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Records = make([]TransactionRecord, len(s.Records))
	copy(cp.Records, s.Records)
	return &cp
}
