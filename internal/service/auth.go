package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/hiredesk/internal/auth"
	"github.com/sakif/hiredesk/internal/model"
	"github.com/sakif/hiredesk/internal/repository"
)

// AuthService orchestrates what happens after the identity provider has
// verified a login: upsert the user record and issue a session token.
//
// It does NOT talk to the provider itself (auth.GitHubProvider does the
// redirect/exchange choreography) and it does NOT set cookies (the handler's
// job). Keeping it in the middle makes the login outcome testable with a
// fake repository and no HTTP at all.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// AuthResult bundles the upserted user with the issued session token so the
// handler can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// LoginOrRegister records a verified login.
//
// First login for an identity creates the user; every later login refreshes
// the profile fields with whatever the provider reported this time (upsert
// semantics — CreatedAt survives, UpdatedAt advances). Then a session token
// is minted with the identity as its subject.
func (s *AuthService) LoginOrRegister(ctx context.Context, profile *auth.Profile) (*AuthResult, error) {
	if profile == nil || profile.Identity == "" {
		return nil, fmt.Errorf("service/auth: provider profile missing identity")
	}

	user := &model.User{
		Identity:  profile.Identity,
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		AvatarURL: profile.AvatarURL,
	}

	if err := s.users.UpsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: upserting user %s: %w", profile.Identity, err)
	}

	s.logger.Info("user authenticated",
		slog.String("identity", user.Identity),
		slog.String("email", user.Email),
	)

	token, err := s.tokens.Generate(user.Identity)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for %s: %w", user.Identity, err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// GetUser returns the user record for an admitted identity. Used by the
// /auth/user handler after the middleware has validated the session.
func (s *AuthService) GetUser(ctx context.Context, identity string) (*model.User, error) {
	if identity == "" {
		return nil, fmt.Errorf("service/auth: identity must not be empty")
	}

	user, err := s.users.GetUserByIdentity(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", identity, err)
	}

	return user, nil
}
