package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ifds/dashboard/internal/core/domain"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour, false, zerolog.Nop()), mr
}

func TestRedisStore_SetThenGet(t *testing.T) {
	store, _ := newRedisStore(t)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	user := domain.User{Username: "bob", Role: domain.RoleManager}

	if err := store.Set(rec, req, "T2", user); err != nil {
		t.Fatalf("Set: %v", err)
	}

	sess := store.Get(carryCookies(t, rec))
	if !sess.Valid() || sess.Token != "T2" || sess.User.Username != "bob" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestRedisStore_UnknownSessionIDFailsClosed(t *testing.T) {
	store, _ := newRedisStore(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sidCookieName, Value: "deadbeefdeadbeefdeadbeefdeadbeef"})

	if sess := store.Get(req); sess.Valid() {
		t.Fatalf("unknown session id must read as no session, got %+v", sess)
	}
}

func TestRedisStore_CorruptedPayloadFailsClosed(t *testing.T) {
	store, mr := newRedisStore(t)

	if err := mr.Set(sessionKey("abc123"), "{broken json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sidCookieName, Value: "abc123"})

	if sess := store.Get(req); sess.Valid() {
		t.Fatalf("corrupted payload must read as no session, got %+v", sess)
	}
}

func TestRedisStore_ClearDeletesPayload(t *testing.T) {
	store, mr := newRedisStore(t)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	if err := store.Set(rec, req, "T3", domain.User{Username: "carol", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	loggedIn := carryCookies(t, rec)
	if err := store.Clear(httptest.NewRecorder(), loggedIn); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if sess := store.Get(loggedIn); sess.Valid() {
		t.Fatalf("expected no session after Clear, got %+v", sess)
	}
	if got := len(mr.Keys()); got != 0 {
		t.Fatalf("expected no stored keys after Clear, got %d", got)
	}
}

func TestRedisStore_SessionExpires(t *testing.T) {
	store, mr := newRedisStore(t)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	if err := store.Set(rec, req, "T4", domain.User{Username: "dave", Role: domain.RoleStaff}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if sess := store.Get(carryCookies(t, rec)); sess.Valid() {
		t.Fatalf("expected session to expire, got %+v", sess)
	}
}

func TestRedisStore_AnonymousFlashesAreOneShot(t *testing.T) {
	store, _ := newRedisStore(t)

	// Flash queued anonymously (e.g. after registration).
	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	rec := httptest.NewRecorder()
	if err := store.AddFlash(rec, req, domain.FlashSuccess, "Registration successful! Please login."); err != nil {
		t.Fatalf("AddFlash: %v", err)
	}

	next := carryCookies(t, rec)
	nextRec := httptest.NewRecorder()
	flashes := store.Flashes(nextRec, next)
	if len(flashes) != 1 || flashes[0].Message != "Registration successful! Please login." {
		t.Fatalf("unexpected flashes: %+v", flashes)
	}
	if again := store.Flashes(httptest.NewRecorder(), carryCookies(t, nextRec)); len(again) != 0 {
		t.Fatalf("flashes must be one-shot, got %v", again)
	}
}
