package postgres

import (
	"context"
	"fmt"
	"time"

	"carbon-bazar/internal/core/ports"
)

// SettlementJournal implements ports.SettlementJournal. Entries feed the
// downstream settlement reconciliation job; the purchase path treats
// Append as best-effort.
type SettlementJournal struct {
	pool Pool
}

// NewSettlementJournal creates a new SettlementJournal.
func NewSettlementJournal(pool Pool) *SettlementJournal {
	return &SettlementJournal{pool: pool}
}

// Append inserts one journaled purchase.
func (j *SettlementJournal) Append(ctx context.Context, entry ports.SettlementEntry) error {
	query := `INSERT INTO settlement_journal (record_id, session_id, listing_id, project_name, credits, occurred_at, journaled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := j.pool.Exec(ctx, query,
		entry.RecordID, entry.SessionID, entry.ListingID,
		entry.ProjectName, entry.Credits, entry.OccurredAt, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("append settlement entry: %w", err)
	}
	return nil
}
