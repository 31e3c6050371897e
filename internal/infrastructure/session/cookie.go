// Package session implements the SessionStore port. The session is the Go
// rendition of the original browser-persisted token/user pair: an encrypted
// cookie by default, or a Redis-held payload keyed by a cookie session ID.
// Either way the token and user record live and die together, and a stored
// record that fails to decode reads as no session at all.
package session

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"github.com/ifds/dashboard/internal/core/domain"
)

const (
	cookieName = "ifds_session"

	keyToken = "token"
	keyUser  = "user"
)

// CookieStore keeps the whole session inside an authenticated cookie.
type CookieStore struct {
	store *sessions.CookieStore
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCookieStore builds a cookie-backed store. secret signs and encrypts the
// cookie; ttl is the default session lifetime, capped per session by the
// access token's expiry.
func NewCookieStore(secret string, ttl time.Duration, secure bool, log zerolog.Logger) *CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieStore{store: store, ttl: ttl, log: log}
}

// Get reads the current session. A missing cookie, a cookie that fails
// authentication, and a user record that fails to decode all yield the zero
// session; nothing propagates.
func (s *CookieStore) Get(r *http.Request) domain.Session {
	sess, err := s.store.Get(r, cookieName)
	if err != nil {
		return domain.Session{}
	}

	token, _ := sess.Values[keyToken].(string)
	raw, _ := sess.Values[keyUser].(string)
	if token == "" || raw == "" {
		return domain.Session{}
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn().Err(err).Msg("stored user record unreadable, treating as no session")
		return domain.Session{}
	}

	return domain.Session{Token: token, User: &user}
}

// Set persists token and user together. Any previous (possibly corrupted)
// record is overwritten wholesale.
func (s *CookieStore) Set(w http.ResponseWriter, r *http.Request, token string, user domain.User) error {
	sess, _ := s.store.Get(r, cookieName)

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	sess.Values[keyToken] = token
	sess.Values[keyUser] = string(raw)

	opts := *s.store.Options
	opts.MaxAge = int(TTLFor(token, s.ttl).Seconds())
	sess.Options = &opts

	return sess.Save(r, w)
}

// Clear removes token and user together and expires the cookie.
func (s *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, cookieName)
	delete(sess.Values, keyToken)
	delete(sess.Values, keyUser)

	opts := *s.store.Options
	opts.MaxAge = -1
	sess.Options = &opts

	return sess.Save(r, w)
}

// AddFlash queues a one-shot message. Flashes work without an established
// session so that, for example, the login page can acknowledge a completed
// registration.
func (s *CookieStore) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) error {
	sess, _ := s.store.Get(r, cookieName)
	raw, err := json.Marshal(domain.Flash{Kind: kind, Message: message})
	if err != nil {
		return err
	}
	sess.AddFlash(string(raw))
	return sess.Save(r, w)
}

// Flashes returns and consumes all queued messages.
func (s *CookieStore) Flashes(w http.ResponseWriter, r *http.Request) []domain.Flash {
	sess, err := s.store.Get(r, cookieName)
	if err != nil {
		return nil
	}

	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		s.log.Warn().Err(err).Msg("failed to consume flashes")
	}

	out := make([]domain.Flash, 0, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var f domain.Flash
		if json.Unmarshal([]byte(str), &f) == nil {
			out = append(out, f)
		}
	}
	return out
}
