package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTLFor bounds the session lifetime with the upstream access token's exp
// claim when the token is a JWT. The token is parsed unverified: the
// upstream API is the verifier, this layer only reads the expiry. Opaque
// tokens, tokens without exp, and already-expired tokens fall back to the
// configured TTL.
func TTLFor(token string, fallback time.Duration) time.Duration {
	if token == "" {
		return fallback
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	until := time.Until(exp.Time)
	if until > 0 && until < fallback {
		return until
	}
	return fallback
}
