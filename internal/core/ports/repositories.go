package ports

import (
	"context"

	"carbon-bazar/internal/core/domain"

	"github.com/google/uuid"
)

// SessionStore defines persistence operations for sessions.
// Implementations must make Mutate atomic per session: the balance,
// transaction count and ledger change together or not at all.
type SessionStore interface {
	Put(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Mutate loads the session, applies fn to it, and persists the result
	// as a single atomic step. fn must not retain the session. Returns the
	// session as persisted.
	Mutate(ctx context.Context, id uuid.UUID, fn func(*domain.Session) error) (*domain.Session, error)
}

// CatalogRepository defines read and supply operations for listings.
type CatalogRepository interface {
	// List returns all listings in catalog display order.
	List(ctx context.Context) ([]domain.Listing, error)
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	// DecrementSupply atomically reserves credits from a listing.
	// Returns the updated listing, domain.ErrSupplyExhausted when the
	// listing cannot cover the amount.
	DecrementSupply(ctx context.Context, id string, credits int64) (*domain.Listing, error)
	// RestoreSupply returns previously reserved credits to a listing.
	// Used as compensation when a purchase fails after reservation.
	RestoreSupply(ctx context.Context, id string, credits int64) error
	Stats(ctx context.Context) ([]domain.MarketStat, error)
}

// SettlementJournal records completed purchases with the settlement
// system. Appends are best-effort: a journal failure never fails the
// purchase that produced the entry.
type SettlementJournal interface {
	Append(ctx context.Context, entry SettlementEntry) error
}

// SettlementEntry is one journaled purchase.
type SettlementEntry struct {
	SessionID   uuid.UUID
	RecordID    uuid.UUID
	ListingID   string
	ProjectName string
	Credits     int64
	OccurredAt  int64 // Unix timestamp
}
