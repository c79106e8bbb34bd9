// Package auth inspects the optional session token the console sends as a
// bearer credential. The signature is never checked here; only the server
// can do that. The console reads the claims to greet the user and to warn
// before the server starts refusing an expired token.
package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/packadmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the session token claims the console cares about.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Session summarizes a parsed token. ExpiresAt is zero when the token has
// no expiry.
type Session struct {
	Subject   string
	Username  string
	Role      string
	ExpiresAt time.Time
}

// Inspect parses token without verifying it. It returns
// common.ErrInvalidToken for malformed input and common.ErrTokenExpired,
// together with the parsed session, when the token expired before now.
func Inspect(token string, now time.Time) (Session, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	s := Session{
		Subject:  claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
		if !now.Before(s.ExpiresAt) {
			return s, common.ErrTokenExpired
		}
	}
	return s, nil
}

// ExpiresWithin reports whether the session expires within d of now.
func (s Session) ExpiresWithin(now time.Time, d time.Duration) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Sub(now) <= d
}
