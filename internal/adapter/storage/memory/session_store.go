// Package memory provides in-process stores. They are the default
// backends: the whole application can run with no external services.
package memory

import (
	"context"
	"sync"

	"carbon-bazar/internal/core/domain"

	"github.com/google/uuid"
)

// SessionStore keeps sessions in a mutex-guarded map. All reads hand out
// deep copies, and Mutate runs under the write lock so the session's
// three ledger fields always move together.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uuid.UUID]*domain.Session)}
}

func (s *SessionStore) Put(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *SessionStore) Get(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return session.Clone(), nil
}

func (s *SessionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) Mutate(_ context.Context, id uuid.UUID, fn func(*domain.Session) error) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	// fn works on a copy; the stored session is replaced only on success.
	draft := session.Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}
	s.sessions[id] = draft
	return draft.Clone(), nil
}
