// Package session provides the request-scoped key/value store the inertia
// package uses for one-shot flash data.
//
// A Session is a plain mutable map with pop semantics and dirty tracking.
// Where the data lives between requests is a Store concern - three stores
// are provided:
//
//   - Memory: process-local, for tests and single-process development
//   - Cookie: the whole session travels in a signed (or encrypted)
//     msgpack cookie, no server-side state
//   - Redis: the cookie carries only a session ID, data lives in Redis
//     with a TTL
//
// Stores load a session at the start of a request and save it back while
// the response headers are still open:
//
//	sess, err := store.Load(r)
//	sess.Set("_messages", msgs)
//	err = store.Save(w, r, sess)
//
// Save is a no-op for sessions that were never written to.
package session

import "net/http"

// DefaultCookieName is the cookie used by the built-in stores unless
// overridden.
const DefaultCookieName = "inertia_session"

// Session is a per-request key/value bag.
//
// Values must survive a msgpack round trip for the Cookie and Redis
// stores: stick to strings, numbers, maps, slices, and structs with
// msgpack tags. Session is not safe for concurrent use; each request
// owns its own instance.
type Session struct {
	id     string
	values map[string]any
	dirty  bool
}

// New returns an empty session.
func New() *Session {
	return &Session{values: make(map[string]any)}
}

// Restore returns a session populated with previously saved values.
// Used by Store implementations; the session starts clean.
func Restore(id string, values map[string]any) *Session {
	if values == nil {
		values = make(map[string]any)
	}
	return &Session{id: id, values: values}
}

// ID returns the server-side session identifier, if the owning store
// assigned one. The Cookie store leaves it empty.
func (s *Session) ID() string {
	return s.id
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores a value under key and marks the session dirty.
func (s *Session) Set(key string, value any) {
	s.values[key] = value
	s.dirty = true
}

// Pop removes and returns the value stored under key. The removal marks
// the session dirty so read-once data does not come back on the next
// request.
func (s *Session) Pop(key string) (any, bool) {
	v, ok := s.values[key]
	if ok {
		delete(s.values, key)
		s.dirty = true
	}
	return v, ok
}

// Clear removes all values.
func (s *Session) Clear() {
	if len(s.values) == 0 {
		return
	}
	s.values = make(map[string]any)
	s.dirty = true
}

// Len returns the number of stored values.
func (s *Session) Len() int {
	return len(s.values)
}

// Dirty reports whether the session was modified since it was loaded.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Values returns the underlying map. Used by Store implementations when
// serializing; callers should treat it as read-only.
func (s *Session) Values() map[string]any {
	return s.values
}

// Store loads and saves sessions across requests.
//
// Load never fails on a missing or undecodable session - it returns a
// fresh one, since a client presenting a garbage cookie is
// indistinguishable from a first-time visitor. Save must be called
// before the response body is written, because stores set cookies.
type Store interface {
	Load(r *http.Request) (*Session, error)
	Save(w http.ResponseWriter, r *http.Request, s *Session) error
}
