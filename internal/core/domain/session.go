package domain

// Session is the authenticated identity held for the current browser
// context. Token and User are set and cleared together; a session with only
// one of the two is treated as absent.
type Session struct {
	Token string
	User  *User
}

// Valid reports whether the session carries both a token and a user record.
func (s Session) Valid() bool {
	return s.Token != "" && s.User != nil
}

// Role returns the session's role, or the empty string for an invalid session.
func (s Session) Role() string {
	if !s.Valid() {
		return ""
	}
	return s.User.Role
}

// Flash kinds rendered by the layout.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashNotice  = "notice"
)

// Flash is a one-shot message surfaced on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
