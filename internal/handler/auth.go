package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/hiredesk/internal/auth"
	"github.com/sakif/hiredesk/internal/service"
)

// AuthHandler manages the OAuth login flow and session endpoints.
//
//   - HandleLogin    → redirect the browser to the provider
//   - HandleCallback → verify state, exchange the code, upsert user, set cookie
//   - HandleLogout   → clear the session cookie
//   - HandleUser     → return the currently logged-in user
type AuthHandler struct {
	provider *auth.GitHubProvider
	auth     *service.AuthService
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(provider *auth.GitHubProvider, authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{provider: provider, auth: authSvc, logger: logger}
}

// HandleLogin redirects the user to the provider's authorization page.
//
// HTTP: GET /auth/github/login
//
// The random state value goes into a short-lived cookie; the callback
// verifies the provider echoed the same value back. That proves the
// callback belongs to a flow this server started (CSRF protection).
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes — enough to approve, short enough to limit exposure
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.provider.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleCallback completes the login flow.
//
// HTTP: GET /auth/github/callback?code=xxx&state=yyy
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" {
		h.logger.Warn("auth callback: missing state cookie")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("auth callback: state mismatch")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// The state cookie is single-use.
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: "", Path: "/", MaxAge: -1})

	// The provider reports a denied authorization as an error parameter.
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("auth callback: authorization denied", slog.String("error", errParam))
		http.Redirect(w, r, "/?auth=denied", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	profile, err := h.provider.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("auth callback: exchange failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	result, err := h.auth.LoginOrRegister(r.Context(), profile)
	if err != nil {
		h.logger.Error("auth callback: login failed",
			slog.String("identity", profile.Identity),
			slog.String("error", err.Error()),
		)
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	// HttpOnly keeps the token away from page scripts; SameSite=Lax keeps it
	// off cross-site POSTs. Secure should be on behind HTTPS.
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(auth.SessionDuration / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session cookie.
//
// HTTP: POST /auth/logout — POST because logout changes state; a GET could
// be triggered by prefetching.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleUser returns the authenticated user's record.
//
// HTTP: GET /auth/user (behind RequireAuth)
func (h *AuthHandler) HandleUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, but don't depend on wiring order.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthenticated",
			Message: "valid session required",
		})
		return
	}

	user, err := h.auth.GetUser(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
