package auth

import (
	"context"
	"net/http"
)

// SessionCookie is the name of the HttpOnly cookie carrying the JWT.
const SessionCookie = "token"

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the identity value.
type contextKey string

const identityKey contextKey = "identity"

// RequireAuth enforces admission on protected routes.
//
// It reads the JWT from the session cookie, validates it, and stores the
// identity in the request context. A missing or invalid token ends the
// request with 401 before any handler — and therefore any store
// operation — runs. The 401 body is JSON so the client can distinguish
// "restart the login flow" from a 404 or validation failure.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := extractIdentity(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthenticated","message":"valid session required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the admitted identity set by RequireAuth.
// Returns ("", false) on an anonymous request.
func IdentityFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey).(string)
	return id, ok && id != ""
}

func extractIdentity(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", err
	}
	return tokens.Validate(cookie.Value)
}
