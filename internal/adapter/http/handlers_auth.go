// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"net/http"

	"tracker/internal/app"
	"tracker/internal/auth"
)

const stateCookieName = "oauth_state"

// SSOProvider runs the authorization code flow against an identity provider.
type SSOProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*app.ExternalIdentity, error)
}

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	sess, err := s.auth.SignUp(r.Context(), req.Email, req.Username, req.Password)
	s.metrics.RecordAuthAttempt("sign_up", err == nil)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.setSessionCookie(w, sess.Token)
	writeJSON(w, http.StatusOK, sess.User)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	sess, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	s.metrics.RecordAuthAttempt("sign_in", err == nil)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.setSessionCookie(w, sess.Token)
	writeJSON(w, http.StatusOK, sess.User)
}

// handleSignOut clears the cookie. Tokens are stateless and stay valid until
// they expire.
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sso_enabled": s.sso != nil,
	})
}

func (s *Server) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	if s.sso == nil {
		http.Error(w, "sso disabled", http.StatusNotFound)
		return
	}
	state, err := generateState()
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode, // Lax required for cross-site redirect returns
		MaxAge:   300,
	})
	http.Redirect(w, r, s.sso.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleSSOCallback(w http.ResponseWriter, r *http.Request) {
	if s.sso == nil {
		http.Error(w, "sso disabled", http.StatusNotFound)
		return
	}

	state, err := r.Cookie(stateCookieName)
	if err != nil || state.Value == "" || r.URL.Query().Get("state") != state.Value {
		http.Error(w, "invalid state", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, MaxAge: -1, Path: "/"})

	ext, err := s.sso.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		s.metrics.RecordAuthAttempt("sso", false)
		s.logger.WarnContext(r.Context(), "sso exchange failed", slog.Any("error", err))
		http.Error(w, "sso login failed", http.StatusUnauthorized)
		return
	}

	sess, err := s.auth.SignInWithSSO(r.Context(), ext.Email, ext.Username)
	s.metrics.RecordAuthAttempt("sso", err == nil)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.setSessionCookie(w, sess.Token)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(auth.TokenTTL.Seconds()),
	})
}

func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
