package service

import (
	"context"
	"errors"
	"time"

	"carbon-bazar/internal/core/domain"
	"carbon-bazar/internal/core/ports"
	"carbon-bazar/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionService implements ports.SessionService.
type SessionService struct {
	store    ports.SessionStore
	verifier ports.CredentialVerifier
	tokens   ports.TokenService
	log      zerolog.Logger
}

// NewSessionService creates the session service.
func NewSessionService(
	store ports.SessionStore,
	verifier ports.CredentialVerifier,
	tokens ports.TokenService,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		store:    store,
		verifier: verifier,
		tokens:   tokens,
		log:      log.With().Str("component", "session_service").Logger(),
	}
}

// Login verifies credentials and opens a fresh session seeded with the
// account's starting balance and transaction count.
func (s *SessionService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	identity, seed, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		s.log.Info().Str("email", email).Msg("login rejected")
		return nil, apperror.ErrInvalidCredentials()
	}

	session := &domain.Session{
		ID:               uuid.New(),
		Identity:         *identity,
		CreditBalance:    seed.CreditBalance,
		TransactionCount: seed.TransactionCount,
		Records:          []domain.TransactionRecord{},
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.store.Put(ctx, session); err != nil {
		return nil, apperror.InternalError(err)
	}

	token, expiresAt, err := s.tokens.Generate(session.ID, identity.Email)
	if err != nil {
		// Don't leave an orphaned session behind.
		if delErr := s.store.Delete(ctx, session.ID); delErr != nil {
			s.log.Warn().Err(delErr).Str("session_id", session.ID.String()).Msg("failed to clean up session after token error")
		}
		return nil, apperror.InternalError(err)
	}

	s.log.Info().
		Str("session_id", session.ID.String()).
		Str("email", identity.Email).
		Msg("session opened")

	return &ports.LoginResult{
		Session:   session,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout closes the session. Closing an already-closed session is a no-op.
func (s *SessionService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return apperror.InternalError(err)
	}
	s.log.Info().Str("session_id", sessionID.String()).Msg("session closed")
	return nil
}

// CurrentSession returns the session, or SES_001 when none exists.
func (s *SessionService) CurrentSession(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if session == nil {
		return nil, apperror.ErrNotAuthenticated()
	}
	return session, nil
}

// RecordPurchase applies a completed purchase to the session ledger.
// The count bump, balance credit and record prepend happen inside one
// store mutation, so a concurrent read never sees a partial purchase.
func (s *SessionService) RecordPurchase(ctx context.Context, sessionID uuid.UUID, projectName string, credits int64) (*domain.TransactionRecord, *domain.Session, error) {
	if credits <= 0 {
		return nil, nil, apperror.ErrInvalidCreditAmount()
	}

	var record domain.TransactionRecord
	session, err := s.store.Mutate(ctx, sessionID, func(sess *domain.Session) error {
		sess.TransactionCount++
		sess.CreditBalance += credits
		record = domain.TransactionRecord{
			ID:            uuid.New(),
			Kind:          domain.RecordKindPurchase,
			ProjectName:   projectName,
			Credits:       credits,
			OccurredOrder: sess.TransactionCount,
			OccurredAt:    time.Now().UTC(),
		}
		sess.Records = append([]domain.TransactionRecord{record}, sess.Records...)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil, apperror.ErrNotAuthenticated()
		}
		return nil, nil, apperror.InternalError(err)
	}

	s.log.Info().
		Str("session_id", sessionID.String()).
		Str("project", projectName).
		Int64("credits", credits).
		Int64("occurred_order", record.OccurredOrder).
		Msg("purchase recorded")

	return &record, session, nil
}
