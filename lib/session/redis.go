package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// RedisStore keeps session data in Redis, keyed by a random session ID
// carried in a cookie. Use it when the app runs as multiple processes or
// needs sessions to survive restarts.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	name      string
	secure    bool
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix overrides the Redis key prefix (default "inertia:sessions:").
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.keyPrefix = prefix }
}

// WithTTL overrides the session lifetime (default 24h).
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

// WithRedisCookieName overrides the session ID cookie name.
func WithRedisCookieName(name string) RedisOption {
	return func(s *RedisStore) { s.name = name }
}

// WithRedisSecureCookie marks the session ID cookie Secure.
func WithRedisSecureCookie() RedisOption {
	return func(s *RedisStore) { s.secure = true }
}

// NewRedisStore creates a Redis-backed store on an existing client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("session: redis client is required")
	}

	s := &RedisStore{
		client:    client,
		keyPrefix: "inertia:sessions:",
		ttl:       24 * time.Hour,
		name:      DefaultCookieName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *RedisStore) key(id string) string {
	return s.keyPrefix + id
}

// Load fetches the session identified by the request's ID cookie. A
// missing cookie, expired key, or undecodable blob yields a fresh
// session with a new ID.
func (s *RedisStore) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(s.name)
	if err != nil {
		return Restore(uuid.NewString(), nil), nil
	}

	blob, err := s.client.Get(r.Context(), s.key(cookie.Value)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Restore(uuid.NewString(), nil), nil
		}
		return nil, fmt.Errorf("session: redis get: %w", err)
	}

	var values map[string]any
	if err := msgpack.Unmarshal(blob, &values); err != nil {
		return Restore(uuid.NewString(), nil), nil
	}
	return Restore(cookie.Value, values), nil
}

// Save writes the session blob back to Redis with the configured TTL
// and refreshes the ID cookie. Emptied sessions are deleted.
func (s *RedisStore) Save(w http.ResponseWriter, r *http.Request, sess *Session) error {
	if !sess.Dirty() {
		return nil
	}

	ctx := r.Context()
	if sess.Len() == 0 {
		if err := s.client.Del(ctx, s.key(sess.ID())).Err(); err != nil {
			return fmt.Errorf("session: redis del: %w", err)
		}
	} else {
		blob, err := msgpack.Marshal(sess.Values())
		if err != nil {
			return fmt.Errorf("session: marshal: %w", err)
		}
		if err := s.client.Set(ctx, s.key(sess.ID()), blob, s.ttl).Err(); err != nil {
			return fmt.Errorf("session: redis set: %w", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    sess.ID(),
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
