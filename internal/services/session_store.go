package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"github.com/haideralmesaody/asrspulse/internal/analysis"
	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

// Session owns one processed table, its stats and any analysis results
// attached afterwards. Sessions are ephemeral: they live in memory and expire
// with the store's TTL.
type Session struct {
	ID        string               `json:"session_id"`
	FilePath  string               `json:"filepath"`
	CreatedAt time.Time            `json:"created_at"`
	Table     *domain.Table        `json:"-"`
	Stats     *domain.Stats        `json:"stats"`
	Analysis  *analysis.Comparison `json:"-"`
}

// HasAnalysis reports whether an analysis has been attached.
func (s *Session) HasAnalysis() bool {
	return s.Analysis != nil
}

// SessionStore is the process-wide session cache. Unlike an unbounded map it
// evicts by TTL and by capacity, so long-running deployments do not leak
// processed tables.
type SessionStore struct {
	cache *ttlcache.Cache[string, *Session]
}

// NewSessionStore creates a store with the given TTL and capacity.
func NewSessionStore(ttl time.Duration, capacity uint64) *SessionStore {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, *Session](ttl),
		ttlcache.WithCapacity[string, *Session](capacity),
	)
	go cache.Start()
	return &SessionStore{cache: cache}
}

// Put stores a session under a fresh opaque id and returns the id.
func (s *SessionStore) Put(session *Session) string {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	s.cache.Set(session.ID, session, ttlcache.DefaultTTL)
	return session.ID
}

// Get retrieves a session by id.
func (s *SessionStore) Get(id string) (*Session, error) {
	item := s.cache.Get(id)
	if item == nil {
		return nil, ErrSessionNotFound
	}
	return item.Value(), nil
}

// Delete evicts a session.
func (s *SessionStore) Delete(id string) {
	s.cache.Delete(id)
}

// List returns every live session.
func (s *SessionStore) List() []*Session {
	items := s.cache.Items()
	sessions := make([]*Session, 0, len(items))
	for _, item := range items {
		sessions = append(sessions, item.Value())
	}
	return sessions
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	return s.cache.Len()
}

// Stop shuts down the background expiration loop.
func (s *SessionStore) Stop() {
	s.cache.Stop()
}
