package service

import (
	"context"
	"sort"

	"carbon-bazar/internal/core/domain"
	"carbon-bazar/internal/core/ports"
	"carbon-bazar/pkg/apperror"

	"github.com/google/uuid"
)

// LedgerService implements ports.LedgerService: it projects a session's
// raw ledger into display-ready activity.
type LedgerService struct {
	store ports.SessionStore
}

// NewLedgerService creates the ledger service.
func NewLedgerService(store ports.SessionStore) *LedgerService {
	return &LedgerService{store: store}
}

// RecentActivity returns up to limit records, most recent first.
// A non-positive limit yields an empty slice, never an error.
func (s *LedgerService) RecentActivity(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.TransactionRecord, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if session == nil {
		return nil, apperror.ErrNotAuthenticated()
	}
	if limit <= 0 {
		return []domain.TransactionRecord{}, nil
	}

	records := make([]domain.TransactionRecord, len(session.Records))
	copy(records, session.Records)

	// Records are stored newest-first already, but the projection must not
	// depend on store layout.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].OccurredOrder > records[j].OccurredOrder
	})

	if limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

// placeholderActivity mirrors the marketing copy shown on an empty
// profile. These rows never enter a ledger.
var placeholderActivity = []ports.ActivityPlaceholder{
	{ProjectName: "Amazon Rainforest Conservation", Credits: 100},
	{ProjectName: "Amazon Rainforest Conservation", Credits: 100},
	{ProjectName: "Amazon Rainforest Conservation", Credits: 100},
}

// PlaceholderActivity returns up to limit illustrative entries.
func (s *LedgerService) PlaceholderActivity(limit int) []ports.ActivityPlaceholder {
	if limit <= 0 {
		return []ports.ActivityPlaceholder{}
	}
	n := len(placeholderActivity)
	if limit < n {
		n = limit
	}
	out := make([]ports.ActivityPlaceholder, n)
	copy(out, placeholderActivity[:n])
	return out
}
