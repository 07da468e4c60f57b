package token

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/models"
)

func initTestService(t *testing.T) *TokenService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RefreshToken{}))
	return &TokenService{
		DB:            db,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func TestRotateToken(t *testing.T) {
	svc := initTestService(t)

	refresh, err := SignRefreshToken(7, "user", svc.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(svc.DB, refresh, 7, "user"))

	access, newRefresh, claims, err := svc.RotateToken(refresh)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, newRefresh)
	require.NotEqual(t, refresh, newRefresh)
	require.EqualValues(t, 7, claims["sub"])
	require.Equal(t, "user", claims["role"])

	// The old token is revoked and cannot rotate again.
	_, _, _, err = svc.RotateToken(refresh)
	require.Error(t, err)

	// The new one can.
	_, _, _, err = svc.RotateToken(newRefresh)
	require.NoError(t, err)
}

func TestRotateRejectsAccessToken(t *testing.T) {
	svc := initTestService(t)

	access, err := SignAccessToken(7, "user", svc.RefreshSecret)
	require.NoError(t, err)

	_, _, _, err = svc.RotateToken(access)
	require.Error(t, err, "an access token must not pass as a refresh token")
}

func TestRotateRejectsUnknownToken(t *testing.T) {
	svc := initTestService(t)

	// Validly signed but never persisted.
	refresh, err := SignRefreshToken(7, "user", svc.RefreshSecret)
	require.NoError(t, err)

	_, _, _, err = svc.RotateToken(refresh)
	require.Error(t, err)
}

func TestRevokeRefresh(t *testing.T) {
	svc := initTestService(t)

	refresh, err := SignRefreshToken(7, "user", svc.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(svc.DB, refresh, 7, "user"))

	require.NoError(t, svc.RevokeRefresh(refresh))

	_, _, _, err = svc.RotateToken(refresh)
	require.Error(t, err)
}
