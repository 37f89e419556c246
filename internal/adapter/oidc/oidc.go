// Package oidc implements single sign-on against an OpenID Connect provider.
package oidc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"tracker/internal/app"
)

// ErrNoIDToken is returned when the token response lacks an id_token.
var ErrNoIDToken = errors.New("no id_token in token response")

// Config names the relying party registration.
type Config struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// idTokenVerifier is satisfied by *gooidc.IDTokenVerifier.
type idTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*gooidc.IDToken, error)
}

// Provider runs the authorization code flow and maps the verified ID token
// to an external identity.
type Provider struct {
	oauth    oauth2.Config
	verifier idTokenVerifier
	claims   func(*gooidc.IDToken, any) error
}

// New discovers the issuer's endpoints and keys.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	provider, err := gooidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	return &Provider{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{gooidc.ScopeOpenID, "email", "profile"},
		},
		verifier: provider.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
		claims:   func(t *gooidc.IDToken, v any) error { return t.Claims(v) },
	}, nil
}

// AuthCodeURL returns the provider URL to redirect the browser to.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for a verified identity.
func (p *Provider) Exchange(ctx context.Context, code string) (*app.ExternalIdentity, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, ErrNoIDToken
	}
	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("verify id_token: %w", err)
	}

	var claims struct {
		Email             string `json:"email"`
		EmailVerified     *bool  `json:"email_verified"`
		PreferredUsername string `json:"preferred_username"`
		Name              string `json:"name"`
	}
	if err := p.claims(idToken, &claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}
	return identityFromClaims(claims.Email, claims.EmailVerified, claims.PreferredUsername, claims.Name)
}

func identityFromClaims(email string, verified *bool, preferred, name string) (*app.ExternalIdentity, error) {
	if email == "" {
		return nil, errors.New("id_token carries no email claim")
	}
	if verified != nil && !*verified {
		return nil, errors.New("email is not verified by the provider")
	}
	username := preferred
	if username == "" {
		username = strings.TrimSpace(name)
	}
	return &app.ExternalIdentity{Email: email, Username: username}, nil
}
