package service

import (
	"testing"
	"time"

	"Vista_Video/internal/repository"
	"Vista_Video/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestUserService(t *testing.T) UserService {
	t.Helper()
	return NewUserService(repository.NewUserRepository(testutil.NewDB(t)), testSecret, time.Hour)
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc := newTestUserService(t)

	user, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cret", user.Password)

	tokenString, err := svc.Login("alice", "s3cret")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, float64(user.ID), claims["user_id"])
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	svc := newTestUserService(t)
	_, err := svc.Register("alice", "one")
	require.NoError(t, err)

	_, err = svc.Register("alice", "two")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestUserService_LoginFailures(t *testing.T) {
	svc := newTestUserService(t)
	_, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrBadLogin)

	_, err = svc.Login("bob", "s3cret")
	assert.ErrorIs(t, err, ErrBadLogin)
}
