package domain

import "errors"

var (
	// ErrNoSession indicates an absent or unparsable stored session.
	ErrNoSession = errors.New("no session")
	// ErrForbidden is returned when the upstream API rejects an action with
	// 403, or when the local role check predicts it would.
	ErrForbidden = errors.New("access forbidden")
	// ErrUpstreamUnavailable wraps transport-level failures reaching the
	// upstream API.
	ErrUpstreamUnavailable = errors.New("upstream API unavailable")
)
