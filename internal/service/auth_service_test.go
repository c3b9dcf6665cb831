package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/noc-fault-service/internal/config"
	"github.com/spec-kit/noc-fault-service/internal/domain"
	apperrors "github.com/spec-kit/noc-fault-service/pkg/util"
)

func newTestAuthService() (*AuthService, *memUserRepo) {
	users := &memUserRepo{}
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "unit-test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60
	cfg.Auth.BcryptCost = 4 // minimum cost keeps the test fast
	return NewAuthService(cfg, users), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), "noc.operator", "ops@example.net", "hunter2!", "", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "hunter2!", user.PasswordHash)

	loggedIn, token, expiresAt, err := svc.Login(context.Background(), "noc.operator", "hunter2!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), "noc.operator", "ops@example.net", "hunter2!", "", nil)
	require.NoError(t, err)

	// Unknown user and wrong password fail with the same message, so a
	// caller cannot probe for valid usernames.
	_, _, _, errUser := svc.Login(context.Background(), "ghost", "hunter2!")
	_, _, _, errPass := svc.Login(context.Background(), "noc.operator", "wrong")
	require.Error(t, errUser)
	require.Error(t, errPass)
	assert.Equal(t, errUser.Error(), errPass.Error())
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), "", "ops@example.net", "pw", "", nil)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Register(context.Background(), "noc.operator", "ops@example.net", "pw", "", nil)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "noc.operator", "dup@example.net", "pw", "", nil)
	assert.True(t, apperrors.IsValidation(err))
}
