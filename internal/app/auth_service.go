// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"tracker/internal/domain"
)

var (
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike.
	ErrInvalidCredentials = domain.Unauthorized("email or password are incorrect")
	// ErrEmailTaken indicates that the email is already registered.
	ErrEmailTaken = domain.Conflict("email is already registered")
)

// PasswordHasher derives and checks password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(subject, role string) (string, error)
}

// ExternalIdentity is a user asserted by a single sign-on provider.
type ExternalIdentity struct {
	Email    string
	Username string
}

// Session is the outcome of a successful sign-up or sign-in.
type Session struct {
	User  *domain.User
	Token string
}

// AuthService handles registration, credential checks and token issuance.
type AuthService struct {
	users  domain.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// SignUp registers a new user with the "user" role and issues a token.
func (s *AuthService) SignUp(ctx context.Context, email, username, password string) (*Session, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	if email == "" || username == "" || password == "" {
		return nil, domain.Invalid("email, username and password are required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if errors.Is(err, domain.ErrConflict) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	return s.issue(user)
}

// SignIn checks the credentials and issues a token carrying the stored role.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		// Spend the same hashing work as a real check so response timing
		// does not reveal whether the email is registered.
		_, _ = s.hasher.Verify(password, s.dummy())
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// SignInWithSSO issues a token for a user already authenticated by an
// external identity provider, provisioning the account on first login.
// Provisioned accounts have no usable password.
func (s *AuthService) SignInWithSSO(ctx context.Context, email, username string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.Invalid("identity provider returned no email")
	}
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.users.Create(ctx, &domain.User{Email: email, Username: username, Role: domain.RoleUser})
		if errors.Is(err, domain.ErrConflict) {
			// Lost a race with a concurrent first login.
			user, err = s.users.GetByEmail(ctx, email)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("sso sign in: %w", err)
	}

	return s.issue(user)
}

// ListUsers returns every registered user.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

// SetRole changes the role of the user registered under email.
func (s *AuthService) SetRole(ctx context.Context, email, role string) error {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return domain.Invalid(fmt.Sprintf("unknown role %q", role))
	}
	err := s.users.SetRole(ctx, normalizeEmail(email), role)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("user not found")
	}
	return err
}

func (s *AuthService) issue(user *domain.User) (*Session, error) {
	token, err := s.tokens.Issue(strconv.FormatInt(user.ID, 10), user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("not-a-real-password")
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
