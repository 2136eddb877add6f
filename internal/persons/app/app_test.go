package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	cfg, err := LoadConfigFile("")
	require.NoError(t, err)
	cfg.Env = "test"
	cfg.LogLevel = "error"
	cfg.DatabaseFile = filepath.Join(dir, "persons.db")
	cfg.PepperFile = filepath.Join(dir, "pepper")
	cfg.MasterKeyFile = filepath.Join(dir, "keys", "master.key")
	cfg.NumKeys = 1
	return cfg
}

func TestNewServesHealth(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedDemoUser = true

	application, err := New(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	for _, path := range []string{"/livez", "/readyz", "/.well-known/jwks.json"} {
		rec := httptest.NewRecorder()
		application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}

	_, err = application.db.Users().GetUserByEmail(t.Context(), "demo@example.com")
	require.NoError(t, err)
}

func TestPersistentKeysSurviveRestart(t *testing.T) {
	cfg := testConfig(t)
	cfg.KeyStorageMode = KeyStoragePersistent

	first, err := New(t.Context(), cfg)
	require.NoError(t, err)
	kids := first.keyManager.KeySet.PublicJWKS().Keys
	require.Len(t, kids, 1)
	require.NoError(t, first.Close())

	_, err = os.Stat(cfg.MasterKeyFile)
	require.NoError(t, err, "master key should be generated on first start")

	second, err := New(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	require.Equal(t, kids[0].Kid, second.keyManager.KeySet.PublicJWKS().Keys[0].Kid)
}
