// Package auth is the authentication and authorization core: password
// hashing, session token issuance and verification, and extraction of the
// caller's identity from an inbound request.
package auth

import (
	"context"
	"net/http"
	"strconv"

	"tracker/internal/domain"
)

// CookieName is the cookie carrying the session token.
const CookieName = "auth_token"

// Verifier decodes a session token into claims.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// Identity is the authenticated caller of a single request.
type Identity struct {
	UserID int64
	Claims Claims
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool { return i.Claims.Role == domain.RoleAdmin }

// Authenticate extracts the caller from r's auth_token cookie. A missing
// cookie, a token that fails verification, or a non-numeric subject all
// yield a KindUnauthorized error.
func Authenticate(r *http.Request, v Verifier) (*Identity, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := v.Verify(cookie.Value)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.Unauthorized("invalid user ID in token")
	}
	return &Identity{UserID: userID, Claims: *claims}, nil
}

// Authorize runs Authenticate and additionally requires the admin role.
// Authentication failures propagate unchanged; a valid non-admin caller
// yields a KindForbidden error.
func Authorize(r *http.Request, v Verifier) (*Identity, error) {
	id, err := Authenticate(r, v)
	if err != nil {
		return nil, err
	}
	if !id.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return id, nil
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by WithIdentity, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}
