package session

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory, keyed by a random ID
// carried in a cookie. Sessions do not survive restarts and are not
// shared between processes - use it for tests and single-process
// development.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]map[string]any
	name     string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]map[string]any),
		name:     DefaultCookieName,
	}
}

// Load returns the session identified by the request's session cookie,
// or a fresh one.
func (s *MemoryStore) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(s.name)
	if err != nil {
		return Restore(uuid.NewString(), nil), nil
	}

	s.mu.Lock()
	values, ok := s.sessions[cookie.Value]
	s.mu.Unlock()
	if !ok {
		return Restore(uuid.NewString(), nil), nil
	}

	// Hand each request its own copy so concurrent requests for the same
	// session cannot race on the map.
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Restore(cookie.Value, copied), nil
}

// Save stores the session and sets the ID cookie.
func (s *MemoryStore) Save(w http.ResponseWriter, r *http.Request, sess *Session) error {
	if !sess.Dirty() {
		return nil
	}

	s.mu.Lock()
	if sess.Len() == 0 {
		delete(s.sessions, sess.ID())
	} else {
		s.sessions[sess.ID()] = sess.Values()
	}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    sess.ID(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
