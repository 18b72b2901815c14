package ports

import (
	"context"
	"time"

	"carbon-bazar/internal/core/domain"

	"github.com/google/uuid"
)

// CredentialVerifier checks login credentials and resolves the identity
// plus the account's starting balances.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*domain.Identity, *AccountSeed, error)
}

// AccountSeed is the ledger state a fresh session starts from.
type AccountSeed struct {
	CreditBalance    int64
	TransactionCount int64
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(sessionID uuid.UUID, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	SessionID uuid.UUID
	Email     string
}

// --- Service Ports (Business Logic) ---

// SessionService defines session lifecycle and the purchase ledger write.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	CurrentSession(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error)
	// RecordPurchase applies a completed purchase to the session:
	// increments the transaction count, adds the credits to the balance
	// and prepends the ledger record, all atomically. Returns the new
	// record and the updated session.
	RecordPurchase(ctx context.Context, sessionID uuid.UUID, projectName string, credits int64) (*domain.TransactionRecord, *domain.Session, error)
}

// LoginResult holds the outcome of a successful login.
type LoginResult struct {
	Session   *domain.Session
	Token     string
	ExpiresAt time.Time
}

// CatalogService defines read access to the marketplace catalog.
type CatalogService interface {
	Listings(ctx context.Context) ([]domain.Listing, error)
	Listing(ctx context.Context, id string) (*domain.Listing, error)
	Stats(ctx context.Context) ([]domain.MarketStat, error)
}

// LedgerService projects a session's ledger into display-ready activity.
type LedgerService interface {
	// RecentActivity returns up to limit records, most recent first.
	RecentActivity(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.TransactionRecord, error)
	// PlaceholderActivity returns the illustrative entries shown when a
	// session has no real records. Placeholders are display-only and are
	// never written to a ledger.
	PlaceholderActivity(limit int) []ActivityPlaceholder
}

// ActivityPlaceholder is an illustrative ledger row for empty ledgers.
type ActivityPlaceholder struct {
	ProjectName string
	Credits     int64
}

// PurchaseService orchestrates a credit purchase end to end.
type PurchaseService interface {
	Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error)
}

// PurchaseRequest holds validated input for a purchase.
type PurchaseRequest struct {
	SessionID uuid.UUID
	ListingID string
	Credits   int64
}

// PurchaseResult holds the outcome of a completed purchase.
type PurchaseResult struct {
	Record  *domain.TransactionRecord
	Session *domain.Session
	Listing *domain.Listing
}

// RouteGuard decides whether a session may enter a route.
type RouteGuard interface {
	CanEnter(route string, session *domain.Session) GuardDecision
}

// GuardDecision is the guard's verdict. When Allow is false, RedirectTo
// names the route to send the visitor to instead.
type GuardDecision struct {
	Allow      bool
	RedirectTo string
}
