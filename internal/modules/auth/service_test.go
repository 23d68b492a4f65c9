package auth

import (
	"testing"
	"time"

	jwtsvc "wastebooking/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	j := jwtsvc.New("test-secret", time.Hour)
	service, err := NewService("dispatcher", "s3cret", j)
	require.NoError(t, err)

	token, err := service.Login(LoginRequest{Username: "dispatcher", Password: "s3cret"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "dispatcher", claims.Username)
	assert.Equal(t, RoleStaff, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	j := jwtsvc.New("test-secret", time.Hour)
	service, err := NewService("dispatcher", "s3cret", j)
	require.NoError(t, err)

	_, err = service.Login(LoginRequest{Username: "dispatcher", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	j := jwtsvc.New("test-secret", time.Hour)
	service, err := NewService("dispatcher", "s3cret", j)
	require.NoError(t, err)

	_, err = service.Login(LoginRequest{Username: "intruder", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
