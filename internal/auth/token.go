package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed validity window of a session token. There is no
// refresh flow; users sign in again after it lapses.
const TokenTTL = 7 * 24 * time.Hour

var (
	// ErrMissingSecret is returned when no signing secret is configured.
	ErrMissingSecret = errors.New("signing secret is not configured")
	// ErrInvalidToken covers bad signatures, malformed tokens and expiry alike.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenCodec issues and verifies HS256 session tokens with a fixed secret.
// It holds no mutable state and is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec returns a codec signing with secret. An empty secret is a
// configuration error.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenCodec{secret: []byte(secret), ttl: TokenTTL, now: time.Now}, nil
}

// WithClock returns a copy of c that reads the current time from now.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	cp := *c
	cp.now = now
	return &cp
}

// Issue signs a token for subject with the given role, valid for TokenTTL.
func (c *TokenCodec) Issue(subject, role string) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Role: role,
	})
	return token.SignedString(c.secret)
}

// Verify parses tokenString, checks its signature and expiry, and returns the
// claims. Every failure is reported as ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
