package redis

// Package redis provides the Redis-backed login session store.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oaltun/fief/internal/domain/model"
	apperrors "github.com/oaltun/fief/internal/errors"
)

// advanceScript transitions a login session's stage in a single atomic
// round-trip. Concurrent advances on the same session id are serialized by
// Redis's single-threaded execution: once a session reaches a terminal stage,
// every later attempt fails instead of silently succeeding. The TTL set at
// creation is preserved.
var advanceScript = redis.NewScript(`
local raw = redis.call('GET', KEYS[1])
if not raw then
  return redis.error_reply('login_session_not_found')
end
local sess = cjson.decode(raw)
if sess['stage'] == 'authenticated' or sess['stage'] == 'consumed' then
  return redis.error_reply('login_session_consumed')
end
sess['stage'] = ARGV[1]
if ARGV[2] ~= '' then
  sess['user_id'] = ARGV[2]
end
local out = cjson.encode(sess)
redis.call('SET', KEYS[1], out, 'KEEPTTL')
return out
`)

// LoginSessionStore is a Redis-based store for in-progress authentication
// attempts. It handles TTL semantics automatically based on session ExpiresAt.
type LoginSessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewLoginSessionStore creates a new Redis-based login session store.
func NewLoginSessionStore(client redis.UniversalClient) *LoginSessionStore {
	return &LoginSessionStore{
		client: client,
		prefix: "login_session:",
	}
}

// NewLoginSessionStoreWithPrefix creates a login session store with a custom key prefix.
func NewLoginSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *LoginSessionStore {
	return &LoginSessionStore{
		client: client,
		prefix: prefix,
	}
}

// Create stores a new session with a TTL derived from its expiry.
func (s *LoginSessionStore) Create(ctx context.Context, sess *model.LoginSession) error {
	if sess == nil || sess.ID == "" {
		return errors.New("login session ID cannot be empty")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal login session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("login session is expired")
	}

	return s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err()
}

// Get retrieves a session by id, failing with NotFound when the key is
// unknown and Expired when it is past its expiry.
func (s *LoginSessionStore) Get(ctx context.Context, id string) (*model.LoginSession, error) {
	if id == "" {
		return nil, apperrors.NotFound("Login session not found")
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("Login session not found")
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var sess model.LoginSession
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal login session: %w", unmarshalErr)
	}

	// Double-check expiration (Redis TTL should handle this, but be defensive)
	if sess.Expired(time.Now()) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return nil, fmt.Errorf("cleanup expired login session: %w", deleteErr)
		}
		return nil, apperrors.Expired("Login session has expired")
	}

	return &sess, nil
}

// Advance atomically transitions the session's stage and optionally binds a
// user. A session already at a terminal stage fails with a Consumed AppError;
// at most one concurrent advance to a terminal stage ever succeeds.
func (s *LoginSessionStore) Advance(
	ctx context.Context,
	id string,
	stage model.LoginStage,
	userID *string,
) (*model.LoginSession, error) {
	if id == "" {
		return nil, apperrors.NotFound("Login session not found")
	}

	boundUser := ""
	if userID != nil {
		boundUser = *userID
	}

	raw, err := advanceScript.Run(ctx, s.client, []string{s.prefix + id}, string(stage), boundUser).Text()
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "login_session_not_found"):
			return nil, apperrors.NotFound("Login session not found")
		case strings.Contains(err.Error(), "login_session_consumed"):
			return nil, apperrors.Consumed("Login session was already consumed")
		default:
			return nil, fmt.Errorf("advance login session: %w", err)
		}
	}

	var sess model.LoginSession
	if unmarshalErr := json.Unmarshal([]byte(raw), &sess); unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal advanced login session: %w", unmarshalErr)
	}
	return &sess, nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *LoginSessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}
