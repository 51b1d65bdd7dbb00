// Package auth provides the access-control gate: the GitHub OAuth login
// flow, JWT session tokens, and the middleware that admits or rejects
// requests.
//
// AUTHENTICATION FLOW:
//  1. User visits /auth/github/login → redirected to GitHub
//  2. GitHub calls back /auth/github/callback with a code
//  3. Server exchanges the code for the provider profile, upserts the user
//  4. Server issues a JWT session token in an HttpOnly cookie
//  5. Middleware validates the cookie on every protected request and puts
//     the identity in the request context
//
// The gate's whole contract toward the rest of the app is: given a request,
// produce either a verified identity string or a rejection. Handlers and
// services run only after admission.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionDuration is how long a session cookie stays valid. After expiry
// the client is sent through the login flow again.
const SessionDuration = 7 * 24 * time.Hour

const issuer = "hiredesk"

// TokenService signs and verifies JWT session tokens.
//
// The token is stateless: the subject claim carries the provider-issued
// identity string, so validating a request needs no store lookup. The HMAC
// secret must be identical for signing and verifying.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService. The secret should be at least 32
// bytes of random data in production (JWT_SECRET=$(openssl rand -hex 32)).
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

type claims struct {
	jwt.RegisteredClaims
}

// Generate signs a session token whose subject is the given identity.
func (s *TokenService) Generate(identity string) (string, error) {
	return s.GenerateWithDuration(identity, SessionDuration)
}

// GenerateWithDuration signs a token with a custom lifetime. Used by tests
// to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(identity string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning the identity from
// the subject claim.
//
// Pinning the algorithm with WithValidMethods blocks algorithm-confusion
// attacks; pinning the issuer rejects tokens minted by other apps sharing
// the secret by accident.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}
