package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/domain"
)

func TestAuthService_SignUp_Success(t *testing.T) {
	ctx := context.Background()

	var stored *domain.User
	users := &mockUserRepo{
		createFn: func(_ context.Context, u *domain.User) (*domain.User, error) {
			stored = u
			out := *u
			out.ID = 5
			return &out, nil
		},
	}
	issuer := &fakeIssuer{}
	svc := NewAuthService(users, &fakeHasher{}, issuer)

	sess, err := svc.SignUp(ctx, " A@x.com ", "a", "pw123")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", stored.Email)
	assert.Equal(t, "hashed:pw123", stored.PasswordHash)
	assert.Equal(t, domain.RoleUser, stored.Role)
	assert.Equal(t, int64(5), sess.User.ID)
	assert.Equal(t, "token-5-user", sess.Token)
	assert.Equal(t, "5", issuer.subject)
	assert.Equal(t, domain.RoleUser, issuer.role)
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &fakeHasher{}, &fakeIssuer{})

	_, err := svc.SignUp(context.Background(), "", "a", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = svc.SignUp(context.Background(), "a@x.com", "a", "")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestAuthService_SignUp_EmailTaken(t *testing.T) {
	users := &mockUserRepo{
		createFn: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, domain.ErrConflict
		},
	}
	svc := NewAuthService(users, &fakeHasher{}, &fakeIssuer{})

	_, err := svc.SignUp(context.Background(), "a@x.com", "a", "pw123")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestAuthService_SignUp_HashFailureIsInternal(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &fakeHasher{hashErr: errors.New("rng")}, &fakeIssuer{})

	_, err := svc.SignUp(context.Background(), "a@x.com", "a", "pw123")
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestAuthService_SignIn(t *testing.T) {
	existing := &domain.User{ID: 3, Email: "a@x.com", PasswordHash: "hashed:pw123", Role: domain.RoleAdmin}
	users := &mockUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email == existing.Email {
				return existing, nil
			}
			return nil, domain.ErrNotFound
		},
	}

	t.Run("success carries stored role", func(t *testing.T) {
		issuer := &fakeIssuer{}
		svc := NewAuthService(users, &fakeHasher{}, issuer)

		sess, err := svc.SignIn(context.Background(), "A@X.com", "pw123")
		require.NoError(t, err)
		assert.Equal(t, existing, sess.User)
		assert.Equal(t, "3", issuer.subject)
		assert.Equal(t, domain.RoleAdmin, issuer.role)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := NewAuthService(users, &fakeHasher{}, &fakeIssuer{})

		_, err := svc.SignIn(context.Background(), "a@x.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email still verifies", func(t *testing.T) {
		h := &fakeHasher{}
		svc := NewAuthService(users, h, &fakeIssuer{})

		_, err := svc.SignIn(context.Background(), "b@x.com", "pw123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, 1, h.verified)
	})

	t.Run("unusable hash", func(t *testing.T) {
		sso := &mockUserRepo{
			getByEmailFn: func(context.Context, string) (*domain.User, error) {
				return &domain.User{ID: 4, Email: "s@x.com"}, nil
			},
		}
		svc := NewAuthService(sso, &fakeHasher{}, &fakeIssuer{})

		_, err := svc.SignIn(context.Background(), "s@x.com", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("repository failure", func(t *testing.T) {
		broken := &mockUserRepo{
			getByEmailFn: func(context.Context, string) (*domain.User, error) {
				return nil, errors.New("db down")
			},
		}
		svc := NewAuthService(broken, &fakeHasher{}, &fakeIssuer{})

		_, err := svc.SignIn(context.Background(), "a@x.com", "pw123")
		require.Error(t, err)
		assert.Equal(t, domain.KindInternal, domain.KindOf(err))
	})
}

func TestAuthService_SignInWithSSO_Provisions(t *testing.T) {
	created := false
	users := &mockUserRepo{
		createFn: func(_ context.Context, u *domain.User) (*domain.User, error) {
			created = true
			assert.Empty(t, u.PasswordHash)
			assert.Equal(t, "sso", u.Username)
			out := *u
			out.ID = 9
			return &out, nil
		},
	}
	svc := NewAuthService(users, &fakeHasher{}, &fakeIssuer{})

	sess, err := svc.SignInWithSSO(context.Background(), "sso@x.com", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(9), sess.User.ID)
}

func TestAuthService_SignInWithSSO_RaceFallsBackToLookup(t *testing.T) {
	calls := 0
	users := &mockUserRepo{
		getByEmailFn: func(context.Context, string) (*domain.User, error) {
			calls++
			if calls == 1 {
				return nil, domain.ErrNotFound
			}
			return &domain.User{ID: 2, Email: "sso@x.com", Role: domain.RoleUser}, nil
		},
		createFn: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, domain.ErrConflict
		},
	}
	svc := NewAuthService(users, &fakeHasher{}, &fakeIssuer{})

	sess, err := svc.SignInWithSSO(context.Background(), "sso@x.com", "sso")
	require.NoError(t, err)
	assert.Equal(t, int64(2), sess.User.ID)
}

func TestAuthService_SetRole(t *testing.T) {
	var gotEmail, gotRole string
	users := &mockUserRepo{
		setRoleFn: func(_ context.Context, email, role string) error {
			gotEmail, gotRole = email, role
			if email == "ghost@x.com" {
				return domain.ErrNotFound
			}
			return nil
		},
	}
	svc := NewAuthService(users, &fakeHasher{}, &fakeIssuer{})

	require.NoError(t, svc.SetRole(context.Background(), "A@x.com", domain.RoleAdmin))
	assert.Equal(t, "a@x.com", gotEmail)
	assert.Equal(t, domain.RoleAdmin, gotRole)

	assert.ErrorIs(t, svc.SetRole(context.Background(), "a@x.com", "root"), domain.ErrInvalid)
	assert.ErrorIs(t, svc.SetRole(context.Background(), "ghost@x.com", domain.RoleUser), domain.ErrNotFound)
}
