package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecordKind distinguishes ledger entry types. Purchases are the only
// kind recorded today.
type RecordKind string

const (
	RecordKindPurchase RecordKind = "PURCHASE"
)

// TransactionRecord is one entry in a session's activity ledger.
// OccurredOrder is a per-session monotonic sequence; higher means more
// recent. It orders the ledger without relying on wall-clock time.
type TransactionRecord struct {
	ID            uuid.UUID  `json:"id"`
	Kind          RecordKind `json:"kind"`
	ProjectName   string     `json:"project_name"`
	Credits       int64      `json:"credits"`
	OccurredOrder int64      `json:"occurred_order"`
	OccurredAt    time.Time  `json:"occurred_at"`
}
