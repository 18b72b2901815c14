package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"carbon-bazar/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const sessionMutateRetries = 5

// SessionStore keeps sessions as JSON blobs in Redis with a TTL.
// Mutate uses WATCH-based optimistic concurrency so the session's
// balance, count and ledger change as one unit even across processes.
type SessionStore struct {
	client *goredis.Client
	ttl    time.Duration
	prefix string
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client *goredis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
		prefix: "session:",
	}
}

func (s *SessionStore) key(id uuid.UUID) string {
	return s.prefix + id.String()
}

func (s *SessionStore) Put(ctx context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis session set: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis session get: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshaling session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis session del: %w", err)
	}
	return nil
}

func (s *SessionStore) Mutate(ctx context.Context, id uuid.UUID, fn func(*domain.Session) error) (*domain.Session, error) {
	key := s.key(id)
	var result *domain.Session

	txn := func(tx *goredis.Tx) error {
		payload, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return domain.ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("redis session get: %w", err)
		}

		var session domain.Session
		if err := json.Unmarshal(payload, &session); err != nil {
			return fmt.Errorf("unmarshaling session: %w", err)
		}
		if err := fn(&session); err != nil {
			return err
		}

		updated, err := json.Marshal(&session)
		if err != nil {
			return fmt.Errorf("marshaling session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, updated, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = &session
		return nil
	}

	for i := 0; i < sessionMutateRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			continue // concurrent write, retry
		}
		return nil, err
	}
	return nil, fmt.Errorf("redis session mutate: too many concurrent updates on %s", key)
}
