package service

import (
	"context"
	"errors"
	"testing"

	"carbon-bazar/internal/adapter/storage/memory"
	"carbon-bazar/internal/core/domain"
	"carbon-bazar/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLedgerSession(t *testing.T, store *memory.SessionStore, records int) *domain.Session {
	t.Helper()
	session := &domain.Session{
		ID:               uuid.New(),
		Identity:         domain.Identity{Email: "demo@carbonbazar.com"},
		CreditBalance:    1500,
		TransactionCount: int64(12 + records),
	}
	// Stored oldest-first on purpose: the projector must sort, not trust layout.
	for i := 1; i <= records; i++ {
		session.Records = append(session.Records, domain.TransactionRecord{
			ID:            uuid.New(),
			Kind:          domain.RecordKindPurchase,
			ProjectName:   "Mangrove Forest Restoration",
			Credits:       100,
			OccurredOrder: int64(12 + i),
		})
	}
	require.NoError(t, store.Put(context.Background(), session))
	return session
}

func TestLedgerService_RecentActivity_DescendingOrder(t *testing.T) {
	store := memory.NewSessionStore()
	svc := NewLedgerService(store)
	session := seedLedgerSession(t, store, 5)

	records, err := svc.RecentActivity(context.Background(), session.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 5)

	for i := 1; i < len(records); i++ {
		assert.Greater(t, records[i-1].OccurredOrder, records[i].OccurredOrder,
			"records must be strictly descending by occurred order")
	}
	assert.Equal(t, int64(17), records[0].OccurredOrder)
}

func TestLedgerService_RecentActivity_Truncation(t *testing.T) {
	store := memory.NewSessionStore()
	svc := NewLedgerService(store)
	session := seedLedgerSession(t, store, 5)
	ctx := context.Background()

	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{"limit below count", 3, 3},
		{"limit equals count", 5, 5},
		{"limit above count", 50, 5},
		{"zero limit", 0, 0},
		{"negative limit", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := svc.RecentActivity(ctx, session.ID, tt.limit)
			require.NoError(t, err)
			assert.Len(t, records, tt.expected)
		})
	}
}

func TestLedgerService_RecentActivity_EmptyLedger(t *testing.T) {
	store := memory.NewSessionStore()
	svc := NewLedgerService(store)
	session := seedLedgerSession(t, store, 0)

	records, err := svc.RecentActivity(context.Background(), session.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLedgerService_RecentActivity_NoSession(t *testing.T) {
	svc := NewLedgerService(memory.NewSessionStore())

	_, err := svc.RecentActivity(context.Background(), uuid.New(), 10)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SES_001", appErr.Code)
}

func TestLedgerService_PlaceholderActivity(t *testing.T) {
	svc := NewLedgerService(memory.NewSessionStore())

	entries := svc.PlaceholderActivity(10)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "Amazon Rainforest Conservation", e.ProjectName)
		assert.Equal(t, int64(100), e.Credits)
	}

	assert.Len(t, svc.PlaceholderActivity(2), 2)
	assert.Empty(t, svc.PlaceholderActivity(0))
}
