package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/persons/internal/persons/domain"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	in := BootstrapInput{FirstName: "Root", LastName: "Admin", Email: "root@example.com", Password: "secret"}

	t.Run("disabled without token", func(t *testing.T) {
		env := newTestEnv(t)
		env.bootstrap.Token = ""
		_, err := env.bootstrap.Bootstrap(ctx, "", in)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("wrong token", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.bootstrap.Bootstrap(ctx, "nope", in)
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("validates input", func(t *testing.T) {
		env := newTestEnv(t)
		bad := in
		bad.Email = "root"
		_, err := env.bootstrap.Bootstrap(ctx, "bootstrap-secret", bad)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("creates admin once", func(t *testing.T) {
		env := newTestEnv(t)

		res, err := env.bootstrap.Bootstrap(ctx, "bootstrap-secret", in)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, res.User.Role)
		require.NotEmpty(t, res.Token)

		id, err := env.auth.VerifyToken(ctx, res.Token)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, id.Role)

		again := in
		again.Email = "root2@example.com"
		_, err = env.bootstrap.Bootstrap(ctx, "bootstrap-secret", again)
		require.ErrorIs(t, err, domain.ErrConflict)
		require.Equal(t, MsgAlreadyBootstrapped, domain.Message(err, ""))

		n, err := env.store.Users().CountUsersByRole(ctx, domain.RoleAdmin)
		require.NoError(t, err)
		require.Equal(t, 1, n)

		_, err = env.auth.Login(ctx, "root@example.com", "secret")
		require.NoError(t, err)
	})
}
