package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/oaltun/fief/internal/domain/model"
	apperrors "github.com/oaltun/fief/internal/errors"
)

// MemorySessionStore is an in-memory LoginSessionStore for unit tests. It
// mirrors the Redis adapter's semantics, including the compare-and-swap
// behavior of Advance under concurrent callers.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*model.LoginSession
	now      func() time.Time
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*model.LoginSession),
		now:      time.Now,
	}
}

// SetNow overrides the clock used for expiry checks.
func (s *MemorySessionStore) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Get returns the stored session, enforcing expiry like the Redis adapter.
func (s *MemorySessionStore) Get(_ context.Context, id string) (*model.LoginSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("Login session not found")
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, id)
		return nil, apperrors.Expired("Login session has expired")
	}
	copied := *sess
	return &copied, nil
}

// Create stores a session keyed by its id.
func (s *MemorySessionStore) Create(_ context.Context, sess *model.LoginSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sess
	s.sessions[sess.ID] = &copied
	return nil
}

// Advance transitions the session stage. At most one concurrent caller can
// move a session into a terminal stage; the rest observe a Consumed error.
func (s *MemorySessionStore) Advance(
	_ context.Context, id string, stage model.LoginStage, userID *string,
) (*model.LoginSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("Login session not found")
	}
	if sess.Stage.Terminal() {
		return nil, apperrors.Consumed("Login session has already been used")
	}

	sess.Stage = stage
	if userID != nil {
		uid := *userID
		sess.UserID = &uid
	}
	copied := *sess
	return &copied, nil
}

// Delete removes a session. Unknown ids are ignored.
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Len reports how many sessions are stored.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
