package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ifds/dashboard/internal/core/domain"
)

const sidCookieName = "ifds_sid"

// RedisStore keeps the session payload server-side in Redis, keyed by a
// random session ID held in a cookie. Payloads expire with the session TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
	log    zerolog.Logger
}

// NewRedisStore builds a Redis-backed store over an already-connected client.
func NewRedisStore(client *redis.Client, ttl time.Duration, secure bool, log zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, secure: secure, log: log}
}

// payload is the stored session record. Token and User are written together;
// Flashes ride along so anonymous pages can carry notices too.
type payload struct {
	Token   string         `json:"token,omitempty"`
	User    *domain.User   `json:"user,omitempty"`
	Flashes []domain.Flash `json:"flashes,omitempty"`
}

func sessionKey(id string) string {
	return "session:" + id
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// load returns the payload for the request's session ID. Any failure — no
// cookie, expired key, unreadable record — reads as an empty payload.
func (s *RedisStore) load(r *http.Request) (string, payload) {
	cookie, err := r.Cookie(sidCookieName)
	if err != nil || cookie.Value == "" {
		return "", payload{}
	}

	data, err := s.client.Get(r.Context(), sessionKey(cookie.Value)).Bytes()
	if err != nil {
		return cookie.Value, payload{}
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn().Err(err).Msg("stored session record unreadable, treating as no session")
		return cookie.Value, payload{}
	}
	return cookie.Value, p
}

func (s *RedisStore) save(w http.ResponseWriter, r *http.Request, id string, p payload, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := s.client.Set(r.Context(), sessionKey(id), data, ttl).Err(); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sidCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Get reads the current session, failing closed on any decode problem.
func (s *RedisStore) Get(r *http.Request) domain.Session {
	_, p := s.load(r)
	if p.Token == "" || p.User == nil {
		return domain.Session{}
	}
	return domain.Session{Token: p.Token, User: p.User}
}

// Set establishes a fresh session under a new ID, dropping whatever record
// the old ID pointed at.
func (s *RedisStore) Set(w http.ResponseWriter, r *http.Request, token string, user domain.User) error {
	oldID, old := s.load(r)
	if oldID != "" {
		_ = s.client.Del(r.Context(), sessionKey(oldID)).Err()
	}

	id, err := newSessionID()
	if err != nil {
		return err
	}
	p := payload{Token: token, User: &user, Flashes: old.Flashes}
	return s.save(w, r, id, p, TTLFor(token, s.ttl))
}

// Clear deletes the stored payload and expires the cookie.
func (s *RedisStore) Clear(w http.ResponseWriter, r *http.Request) error {
	id, _ := s.load(r)
	if id != "" {
		if err := s.client.Del(r.Context(), sessionKey(id)).Err(); err != nil {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sidCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// AddFlash queues a one-shot message, creating an anonymous session record
// when none exists yet.
func (s *RedisStore) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) error {
	id, p := s.load(r)
	if id == "" {
		var err error
		if id, err = newSessionID(); err != nil {
			return err
		}
	}
	p.Flashes = append(p.Flashes, domain.Flash{Kind: kind, Message: message})
	return s.save(w, r, id, p, s.payloadTTL(p))
}

// Flashes returns and consumes all queued messages.
func (s *RedisStore) Flashes(w http.ResponseWriter, r *http.Request) []domain.Flash {
	id, p := s.load(r)
	if id == "" || len(p.Flashes) == 0 {
		return nil
	}
	out := p.Flashes
	p.Flashes = nil
	if err := s.save(w, r, id, p, s.payloadTTL(p)); err != nil {
		s.log.Warn().Err(err).Msg("failed to consume flashes")
	}
	return out
}

func (s *RedisStore) payloadTTL(p payload) time.Duration {
	if p.Token != "" {
		return TTLFor(p.Token, s.ttl)
	}
	return s.ttl
}
