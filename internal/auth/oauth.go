package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// Profile is what the identity provider tells us about a user after a
// successful login. Identity is the opaque, stable key the rest of the
// system uses ("github:<numeric id>"); everything else is display data that
// gets refreshed on each login.
type Profile struct {
	Identity  string
	Email     string
	FirstName string
	LastName  string
	AvatarURL string
}

// githubUser is the slice of GitHub's /user response we care about. GitHub
// returns much more; we only unmarshal what we store.
type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`  // display name, may be empty
	Email     string `json:"email"` // empty if hidden in GitHub settings
	AvatarURL string `json:"avatar_url"`
}

// GitHubProvider wraps golang.org/x/oauth2 for the GitHub authorization-code
// flow.
//
// The code-for-token exchange happens server-to-server using the client
// secret; the access token never reaches the browser. This app only uses the
// token once, to read the profile — it is not stored.
type GitHubProvider struct {
	config *oauth2.Config
}

// NewGitHubProvider creates a provider with the given OAuth app credentials.
// callbackURL must exactly match the callback configured on the OAuth app.
func NewGitHubProvider(clientID, clientSecret, callbackURL string) *GitHubProvider {
	return &GitHubProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
	}
}

// AuthURL returns the provider URL to redirect the user to. The state value
// is echoed back on the callback and checked against a cookie — standard
// CSRF protection for the OAuth flow.
func (p *GitHubProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange completes the login: trades the authorization code for an access
// token, reads the provider profile with it, and maps that onto our Profile.
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	oauthToken, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: exchanging OAuth code: %w", err)
	}

	// oauth2.Config.Client returns an *http.Client that adds the bearer
	// token to every request.
	client := p.config.Client(ctx, oauthToken)

	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		return nil, fmt.Errorf("auth: calling GitHub /user API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: GitHub /user API returned status %d", resp.StatusCode)
	}

	var gh githubUser
	if err := json.NewDecoder(resp.Body).Decode(&gh); err != nil {
		return nil, fmt.Errorf("auth: decoding GitHub /user response: %w", err)
	}

	if gh.ID == 0 {
		return nil, fmt.Errorf("auth: GitHub returned an invalid user (ID = 0)")
	}

	first, last := splitName(gh.Name, gh.Login)

	return &Profile{
		Identity:  fmt.Sprintf("github:%d", gh.ID),
		Email:     gh.Email,
		FirstName: first,
		LastName:  last,
		AvatarURL: gh.AvatarURL,
	}, nil
}

// splitName turns GitHub's single display name into first/last. Users who
// set no display name fall back to their login as the first name. Anything
// past the first space is the last name — good enough for display, which is
// all these fields are for.
func splitName(name, login string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return login, ""
	}
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i], strings.TrimSpace(name[i+1:])
	}
	return name, ""
}
