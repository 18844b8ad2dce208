package session

import (
	"net/http"
)

// CookieStore keeps the whole session in a single cookie, so no
// server-side state is needed. Values are msgpack-encoded and HMAC-signed
// by default; call WithEncryption to make the payload opaque to clients.
//
// Cookies cap out around 4KB - keep sessions small (flash data fits
// comfortably).
type CookieStore struct {
	codec     *Codec
	name      string
	path      string
	maxAge    int
	secure    bool
	encrypted bool
	sameSite  http.SameSite
}

// CookieOption configures a CookieStore.
type CookieOption func(*CookieStore)

// WithCookieName overrides the cookie name (default "inertia_session").
func WithCookieName(name string) CookieOption {
	return func(s *CookieStore) { s.name = name }
}

// WithMaxAge sets the cookie lifetime in seconds. Zero (the default)
// makes it a browser-session cookie.
func WithMaxAge(seconds int) CookieOption {
	return func(s *CookieStore) { s.maxAge = seconds }
}

// WithSecure marks the cookie Secure (HTTPS only).
func WithSecure() CookieOption {
	return func(s *CookieStore) { s.secure = true }
}

// WithEncryption encrypts the payload with AES-256-GCM instead of
// signing it. Use when session values themselves are sensitive, not
// just tamper-prone.
func WithEncryption() CookieOption {
	return func(s *CookieStore) { s.encrypted = true }
}

// NewCookieStore creates a cookie-backed store signing (or encrypting)
// payloads with the given secret key.
func NewCookieStore(key []byte, opts ...CookieOption) (*CookieStore, error) {
	codec, err := NewCodec(key)
	if err != nil {
		return nil, err
	}

	s := &CookieStore{
		codec:    codec,
		name:     DefaultCookieName,
		path:     "/",
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load reads and verifies the session cookie. A missing, tampered, or
// undecodable cookie yields a fresh empty session.
func (s *CookieStore) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(s.name)
	if err != nil {
		return New(), nil
	}

	values, err := s.codec.Decode(cookie.Value, s.encrypted)
	if err != nil {
		return New(), nil
	}
	return Restore("", values), nil
}

// Save writes the session back as a cookie. Sessions that were never
// modified are left alone; sessions emptied out have their cookie
// deleted.
func (s *CookieStore) Save(w http.ResponseWriter, r *http.Request, sess *Session) error {
	if !sess.Dirty() {
		return nil
	}

	if sess.Len() == 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     s.name,
			Value:    "",
			Path:     s.path,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: s.sameSite,
		})
		return nil
	}

	encoded, err := s.codec.Encode(sess.Values(), s.encrypted)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    encoded,
		Path:     s.path,
		MaxAge:   s.maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: s.sameSite,
	})
	return nil
}
