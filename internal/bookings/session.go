package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caterly/pkg/cache"
)

var ErrSessionNotFound = errors.New("wizard session not found or expired")

// SessionStore persists wizard sessions in Redis with a TTL. Sessions are
// keyed by session ID; expiry abandons the draft without side effects.
type SessionStore interface {
	Save(ctx context.Context, session *WizardSession) error
	Get(ctx context.Context, sessionID string) (*WizardSession, error)
	Delete(ctx context.Context, sessionID string) error
}

type sessionStore struct {
	cache cache.Service
	ttl   time.Duration
}

func NewSessionStore(cacheService cache.Service, ttl time.Duration) SessionStore {
	return &sessionStore{
		cache: cacheService,
		ttl:   ttl,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("caterly:wizard:session:%s", sessionID)
}

func (s *sessionStore) Save(ctx context.Context, session *WizardSession) error {
	session.UpdatedAt = time.Now()
	if err := s.cache.Set(ctx, sessionKey(session.SessionID), session, s.ttl); err != nil {
		return fmt.Errorf("failed to save wizard session: %w", err)
	}
	return nil
}

func (s *sessionStore) Get(ctx context.Context, sessionID string) (*WizardSession, error) {
	var session WizardSession
	if err := s.cache.Get(ctx, sessionKey(sessionID), &session); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}
	return &session, nil
}

func (s *sessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, sessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}
	return nil
}
