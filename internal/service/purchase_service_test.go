package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"carbon-bazar/internal/core/domain"
	"carbon-bazar/internal/core/ports"
	"carbon-bazar/internal/core/ports/mocks"
	"carbon-bazar/pkg/apperror"
	"carbon-bazar/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupPurchaseService(t *testing.T) (
	*PurchaseService,
	*mocks.MockSessionService,
	*mocks.MockCatalogRepository,
	*mocks.MockSettlementJournal,
	*gomock.Controller,
) {
	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessionService(ctrl)
	catalog := mocks.NewMockCatalogRepository(ctrl)
	journal := mocks.NewMockSettlementJournal(ctrl)

	svc := NewPurchaseService(sessions, catalog, journal, logger.New("error", false))
	return svc, sessions, catalog, journal, ctrl
}

func purchaseFixtures() (uuid.UUID, *domain.Session, *domain.Listing, *domain.TransactionRecord) {
	sessionID := uuid.New()
	session := &domain.Session{
		ID:               sessionID,
		Identity:         domain.Identity{Email: "demo@carbonbazar.com"},
		CreditBalance:    1600,
		TransactionCount: 13,
	}
	listing := &domain.Listing{
		ID:               "listing-1",
		ProjectName:      "Mangrove Forest Restoration",
		AvailableCredits: 900,
	}
	record := &domain.TransactionRecord{
		ID:            uuid.New(),
		Kind:          domain.RecordKindPurchase,
		ProjectName:   "Mangrove Forest Restoration",
		Credits:       100,
		OccurredOrder: 13,
		OccurredAt:    time.Now().UTC(),
	}
	return sessionID, session, listing, record
}

func TestPurchaseService_Purchase_Success(t *testing.T) {
	svc, sessions, catalog, journal, ctrl := setupPurchaseService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sessionID, session, listing, record := purchaseFixtures()

	sessions.EXPECT().CurrentSession(ctx, sessionID).Return(session, nil)
	catalog.EXPECT().DecrementSupply(ctx, "listing-1", int64(100)).Return(listing, nil)
	sessions.EXPECT().RecordPurchase(ctx, sessionID, "Mangrove Forest Restoration", int64(100)).
		Return(record, session, nil)
	journal.EXPECT().Append(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, entry ports.SettlementEntry) error {
			assert.Equal(t, record.ID, entry.RecordID)
			assert.Equal(t, "listing-1", entry.ListingID)
			assert.Equal(t, int64(100), entry.Credits)
			return nil
		})

	result, err := svc.Purchase(ctx, ports.PurchaseRequest{
		SessionID: sessionID,
		ListingID: "listing-1",
		Credits:   100,
	})
	require.NoError(t, err)
	assert.Equal(t, record, result.Record)
	assert.Equal(t, session, result.Session)
	assert.Equal(t, int64(900), result.Listing.AvailableCredits)
}

func TestPurchaseService_Purchase_InvalidAmount(t *testing.T) {
	svc, _, _, _, ctrl := setupPurchaseService(t)
	defer ctrl.Finish()

	_, err := svc.Purchase(context.Background(), ports.PurchaseRequest{
		SessionID: uuid.New(),
		ListingID: "listing-1",
		Credits:   0,
	})
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "PUR_001", appErr.Code)
}

func TestPurchaseService_Purchase_NotAuthenticated(t *testing.T) {
	svc, sessions, _, _, ctrl := setupPurchaseService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sessionID := uuid.New()
	sessions.EXPECT().CurrentSession(ctx, sessionID).Return(nil, apperror.ErrNotAuthenticated())

	_, err := svc.Purchase(ctx, ports.PurchaseRequest{SessionID: sessionID, ListingID: "listing-1", Credits: 100})
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SES_001", appErr.Code)
}

func TestPurchaseService_Purchase_ListingNotFound(t *testing.T) {
	svc, sessions, catalog, _, ctrl := setupPurchaseService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sessionID, session, _, _ := purchaseFixtures()

	sessions.EXPECT().CurrentSession(ctx, sessionID).Return(session, nil)
	catalog.EXPECT().DecrementSupply(ctx, "listing-99", int64(100)).Return(nil, nil)

	_, err := svc.Purchase(ctx, ports.PurchaseRequest{SessionID: sessionID, ListingID: "listing-99", Credits: 100})
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CAT_001", appErr.Code)
}

func TestPurchaseService_Purchase_InsufficientSupply(t *testing.T) {
	svc, sessions, catalog, _, ctrl := setupPurchaseService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sessionID, session, _, _ := purchaseFixtures()

	sessions.EXPECT().CurrentSession(ctx, sessionID).Return(session, nil)
	catalog.EXPECT().DecrementSupply(ctx, "listing-1", int64(5000)).Return(nil, domain.ErrSupplyExhausted)

	_, err := svc.Purchase(ctx, ports.PurchaseRequest{SessionID: sessionID, ListingID: "listing-1", Credits: 5000})
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CAT_002", appErr.Code)
}

func TestPurchaseService_Purchase_LedgerFailureRestoresSupply(t *testing.T) {
	svc, sessions, catalog, _, ctrl := setupPurchaseService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sessionID, session, listing, _ := purchaseFixtures()

	sessions.EXPECT().CurrentSession(ctx, sessionID).Return(session, nil)
	catalog.EXPECT().DecrementSupply(ctx, "listing-1", int64(100)).Return(listing, nil)
	sessions.EXPECT().RecordPurchase(ctx, sessionID, "Mangrove Forest Restoration", int64(100)).
		Return(nil, nil, apperror.InternalError(errors.New("store unavailable")))
	catalog.EXPECT().RestoreSupply(ctx, "listing-1", int64(100)).Return(nil)

	_, err := svc.Purchase(ctx, ports.PurchaseRequest{SessionID: sessionID, ListingID: "listing-1", Credits: 100})
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SYS_001", appErr.Code)
}

func TestPurchaseService_Purchase_JournalFailureDoesNotFailPurchase(t *testing.T) {
	svc, sessions, catalog, journal, ctrl := setupPurchaseService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sessionID, session, listing, record := purchaseFixtures()

	sessions.EXPECT().CurrentSession(ctx, sessionID).Return(session, nil)
	catalog.EXPECT().DecrementSupply(ctx, "listing-1", int64(100)).Return(listing, nil)
	sessions.EXPECT().RecordPurchase(ctx, sessionID, "Mangrove Forest Restoration", int64(100)).
		Return(record, session, nil)
	journal.EXPECT().Append(ctx, gomock.Any()).Return(errors.New("journal down"))

	result, err := svc.Purchase(ctx, ports.PurchaseRequest{SessionID: sessionID, ListingID: "listing-1", Credits: 100})
	require.NoError(t, err)
	assert.Equal(t, record, result.Record)
}

func TestPurchaseService_Purchase_NilJournal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessions := mocks.NewMockSessionService(ctrl)
	catalog := mocks.NewMockCatalogRepository(ctrl)
	svc := NewPurchaseService(sessions, catalog, nil, logger.New("error", false))

	ctx := context.Background()
	sessionID, session, listing, record := purchaseFixtures()

	sessions.EXPECT().CurrentSession(ctx, sessionID).Return(session, nil)
	catalog.EXPECT().DecrementSupply(ctx, "listing-1", int64(100)).Return(listing, nil)
	sessions.EXPECT().RecordPurchase(ctx, sessionID, "Mangrove Forest Restoration", int64(100)).
		Return(record, session, nil)

	result, err := svc.Purchase(ctx, ports.PurchaseRequest{SessionID: sessionID, ListingID: "listing-1", Credits: 100})
	require.NoError(t, err)
	assert.NotNil(t, result)
}
