package ports

import (
	"net/http"

	"github.com/ifds/dashboard/internal/core/domain"
)

// SessionStore is the single read/write boundary for the browser session.
// Implementations persist the token and user record together; a stored
// record that cannot be decoded is reported as an empty session (fail
// closed), never as an error.
type SessionStore interface {
	// Get reads the current session. Absence or corruption yields the zero
	// Session.
	Get(r *http.Request) domain.Session
	// Set establishes a session, persisting token and user atomically.
	Set(w http.ResponseWriter, r *http.Request, token string, user domain.User) error
	// Clear destroys the session, removing token and user together.
	Clear(w http.ResponseWriter, r *http.Request) error
	// AddFlash queues a one-shot message for the next rendered page.
	AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) error
	// Flashes returns and consumes all queued messages.
	Flashes(w http.ResponseWriter, r *http.Request) []domain.Flash
}
