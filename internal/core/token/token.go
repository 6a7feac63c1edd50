// Package token issues and verifies the signed bearer credential returned at
// login. Tokens are self-contained: the embedded role is a snapshot taken at
// issuance and is trusted until expiry, with no per-request store lookup and
// no revocation list.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ucetportal/campus-api/internal/core/domain"
)

const defaultTTL = time.Hour

// Claims is the verified claim set carried by a token.
type Claims struct {
	UserID   string      `json:"uid"`
	Role     domain.Role `json:"role"`
	Username string      `json:"username,omitempty"`
	Email    string      `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies tokens with a server-held HMAC secret. The secret
// is fixed at construction; rotating it implicitly invalidates every
// outstanding token.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer returns an Issuer with the given secret and token lifetime.
// A non-positive ttl falls back to one hour.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token for the given user.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Role:     user.Role,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify validates the signature and expiry of a token string and returns its
// claims. Malformed, badly signed, and expired tokens all collapse into
// domain.ErrInvalidToken; the underlying cause is wrapped for logging only.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidToken, err)
	}
	if !t.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
