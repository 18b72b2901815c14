package service

import (
	"context"
	"errors"

	"carbon-bazar/internal/core/domain"
	"carbon-bazar/internal/core/ports"
	"carbon-bazar/pkg/apperror"

	"github.com/rs/zerolog"
)

// PurchaseService implements ports.PurchaseService. It orchestrates a
// purchase across the catalog, the session ledger and the settlement
// journal.
type PurchaseService struct {
	sessions ports.SessionService
	catalog  ports.CatalogRepository
	journal  ports.SettlementJournal // optional
	log      zerolog.Logger
}

// NewPurchaseService creates the purchase service. journal may be nil
// when no settlement backend is configured.
func NewPurchaseService(
	sessions ports.SessionService,
	catalog ports.CatalogRepository,
	journal ports.SettlementJournal,
	log zerolog.Logger,
) *PurchaseService {
	return &PurchaseService{
		sessions: sessions,
		catalog:  catalog,
		journal:  journal,
		log:      log.With().Str("component", "purchase_service").Logger(),
	}
}

// Purchase reserves supply on the listing, records the trade on the
// session ledger, and journals it for settlement. A ledger failure
// rolls the reservation back; a journal failure only logs.
func (s *PurchaseService) Purchase(ctx context.Context, req ports.PurchaseRequest) (*ports.PurchaseResult, error) {
	if req.Credits <= 0 {
		return nil, apperror.ErrInvalidCreditAmount()
	}

	// Fail before touching supply if the session is gone.
	if _, err := s.sessions.CurrentSession(ctx, req.SessionID); err != nil {
		return nil, err
	}

	listing, err := s.catalog.DecrementSupply(ctx, req.ListingID, req.Credits)
	if err != nil {
		if errors.Is(err, domain.ErrSupplyExhausted) {
			return nil, apperror.ErrInsufficientSupply()
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.InternalError(err)
	}
	if listing == nil {
		return nil, apperror.ErrListingNotFound(req.ListingID)
	}

	record, session, err := s.sessions.RecordPurchase(ctx, req.SessionID, listing.ProjectName, req.Credits)
	if err != nil {
		// Hand the reserved supply back before surfacing the failure.
		if restoreErr := s.catalog.RestoreSupply(ctx, req.ListingID, req.Credits); restoreErr != nil {
			s.log.Error().Err(restoreErr).
				Str("listing_id", req.ListingID).
				Int64("credits", req.Credits).
				Msg("failed to restore listing supply after ledger error")
		}
		return nil, err
	}

	if s.journal != nil {
		entry := ports.SettlementEntry{
			SessionID:   session.ID,
			RecordID:    record.ID,
			ListingID:   listing.ID,
			ProjectName: listing.ProjectName,
			Credits:     record.Credits,
			OccurredAt:  record.OccurredAt.Unix(),
		}
		if err := s.journal.Append(ctx, entry); err != nil {
			s.log.Warn().Err(err).
				Str("record_id", record.ID.String()).
				Msg("settlement journal append failed")
		}
	}

	return &ports.PurchaseResult{
		Record:  record,
		Session: session,
		Listing: listing,
	}, nil
}
