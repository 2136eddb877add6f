package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/persons/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "persons-api",
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("persons-api"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		err := c.ValidateIssuer("other-service")
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience: []string{"persons", "admin-ui"},
		},
	}

	t.Run("contains match", func(t *testing.T) {
		require.NoError(t, c.ValidateAudience([]string{"persons"}))
	})

	t.Run("any of expected", func(t *testing.T) {
		require.NoError(t, c.ValidateAudience([]string{"foo", "admin-ui"}))
	})

	t.Run("no match", func(t *testing.T) {
		err := c.ValidateAudience([]string{"billing"})
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("empty expected list", func(t *testing.T) {
		require.NoError(t, c.ValidateAudience(nil))
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u1", "user", "a@b.c", time.Hour, "iss", nil, now)
		require.NoError(t, c.ValidateExpiry(now, 0))
	})

	t.Run("expired", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u1", "user", "", time.Minute, "iss", nil, now.Add(-time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(now, 0), jwtx.ErrExpired)
	})

	t.Run("expired within leeway", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u1", "user", "", time.Minute, "iss", nil, now.Add(-time.Minute-10*time.Second))
		require.NoError(t, c.ValidateExpiry(now, 30*time.Second))
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u1", "user", "", time.Hour, "iss", nil, now.Add(time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(now, 0), jwtx.ErrNotYetValid)
	})

	t.Run("missing exp", func(t *testing.T) {
		c := &jwtx.Claims{}
		require.ErrorIs(t, c.ValidateExpiry(now, 0), jwtx.ErrMissingExpiry)
	})
}

func TestNewAccessClaims(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := jwtx.NewAccessClaims("user-1", "admin", "root@example.com", 24*time.Hour, "persons-api", []string{"persons"}, now)

	require.Equal(t, "user-1", c.Subject)
	require.Equal(t, "admin", c.Role)
	require.Equal(t, "root@example.com", c.Email)
	require.Equal(t, "persons-api", c.Issuer)
	require.Equal(t, jwt.ClaimStrings{"persons"}, c.Audience)
	require.Equal(t, now, c.IssuedAt.Time.UTC())
	require.Equal(t, now.Add(24*time.Hour), c.ExpiresAt.Time.UTC())
	require.NotEmpty(t, c.ID)

	other := jwtx.NewAccessClaims("user-1", "admin", "", time.Hour, "persons-api", nil, now)
	require.NotEqual(t, c.ID, other.ID)
}
