package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobazaar/backend/internal/hash"
	"github.com/gobazaar/backend/internal/models"
	"github.com/gobazaar/backend/internal/transport"
	"github.com/gobazaar/backend/pkg/tokens"
)

var testJWTSecret = []byte("test-jwt-secret")

func validRegistration() transport.RegisterRequest {
	return transport.RegisterRequest{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Password:  "correct horse",
		Address:   "14 MG Road, Bengaluru",
	}
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: newTestRepo(t), JWTSecret: testJWTSecret}
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*transport.RegisterRequest)
	}{
		{name: "missing first name", mutate: func(r *transport.RegisterRequest) { r.FirstName = "" }},
		{name: "missing address", mutate: func(r *transport.RegisterRequest) { r.Address = "" }},
		{name: "bad email", mutate: func(r *transport.RegisterRequest) { r.Email = "not-an-email" }},
		{name: "short password", mutate: func(r *transport.RegisterRequest) { r.Password = "short" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validRegistration()
			tt.mutate(&req)

			_, err := svc.Register(ctx, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: newTestRepo(t), JWTSecret: testJWTSecret}
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	_, err = svc.Register(ctx, validRegistration())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin_IssuesUserToken(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: newTestRepo(t), JWTSecret: testJWTSecret}
	ctx := context.Background()

	registered, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	user, token, expiresAt, err := svc.Login(ctx, "asha@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.False(t, expiresAt.IsZero())

	claims, err := tokens.AccessClaimsFromToken(token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, claims.Role)
	assert.Equal(t, registered.ID.String(), claims.Subject)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: newTestRepo(t), JWTSecret: testJWTSecret}
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "asha@example.com", "wrong password")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, _, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestLoginAdmin_TokenCarriesRole(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testJWTSecret}
	ctx := context.Background()

	passwordHash, err := hash.HashPassword("dispatch-pass")
	require.NoError(t, err)
	admin := &models.Admin{
		Name:         "Dispatch Desk",
		Email:        "dispatch@example.com",
		PasswordHash: passwordHash,
		Role:         models.RoleDispatcher,
	}
	require.NoError(t, r.CreateAdmin(ctx, admin))

	got, token, _, err := svc.LoginAdmin(ctx, "dispatch@example.com", "dispatch-pass")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	claims, err := tokens.AccessClaimsFromToken(token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDispatcher, claims.Role)
}
