package jwtx_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/persons/pkg/cryptox"
	"github.com/aussiebroadwan/persons/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type memKeyStore struct {
	mu   sync.Mutex
	keys []jwtx.SigningKeyRecord
}

func (m *memKeyStore) ListSigningKeys(context.Context) ([]jwtx.SigningKeyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]jwtx.SigningKeyRecord(nil), m.keys...), nil
}

func (m *memKeyStore) CreateSigningKey(_ context.Context, k jwtx.SigningKeyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, k)
	return nil
}

func TestNewKeyManager_AllAlgorithms(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		rsaBits   int
	}{
		{"RS256", jwtx.AlgorithmRS256, 2048},
		{"ES256", jwtx.AlgorithmES256, 0},
		{"EdDSA", jwtx.AlgorithmEdDSA, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, err := jwtx.NewKeyManager(context.Background(), jwtx.KeyManagerOptions{
				Algorithm: tt.algorithm,
				Issuer:    "test-issuer",
				Audience:  []string{"test-audience"},
				RSABits:   tt.rsaBits,
				NumKeys:   1,
			})
			require.NoError(t, err)
			require.Equal(t, tt.algorithm, km.Algorithm())
			require.True(t, km.IsReady())
			require.Equal(t, 1, km.NumSigners())

			signer := km.Signer()
			require.Equal(t, tt.algorithm, signer.Alg())

			claims := jwtx.NewAccessClaims("user-1", "user", "u@example.com", time.Hour, "test-issuer", []string{"test-audience"}, time.Now())
			token, err := signer.Sign(claims)
			require.NoError(t, err)

			got, err := km.Verifier.Verify(token)
			require.NoError(t, err)
			require.Equal(t, "user-1", got.Subject)
			require.Equal(t, "user", got.Role)
			require.Equal(t, "u@example.com", got.Email)
		})
	}
}

func TestNewKeyManager_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := jwtx.NewKeyManager(ctx, jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA})
	require.Error(t, err)

	_, err = jwtx.NewKeyManager(ctx, jwtx.KeyManagerOptions{Algorithm: "HS256", Issuer: "iss"})
	require.Error(t, err)

	_, err = jwtx.NewKeyManager(ctx, jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmEdDSA,
		Issuer:    "iss",
		Store:     &memKeyStore{},
	})
	require.Error(t, err, "a store without a sealer must be rejected")
}

func TestNewKeyManager_NumKeys(t *testing.T) {
	km, err := jwtx.NewKeyManager(context.Background(), jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmEdDSA,
		Issuer:    "iss",
	})
	require.NoError(t, err)
	require.Equal(t, 3, km.NumSigners())
	require.Equal(t, 3, km.KeySet.Len())

	km, err = jwtx.NewKeyManager(context.Background(), jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmEdDSA,
		Issuer:    "iss",
		NumKeys:   50,
	})
	require.NoError(t, err)
	require.Equal(t, 10, km.NumSigners())

	kids := map[string]bool{}
	for _, k := range km.KeySet.PublicJWKS().Keys {
		require.Contains(t, k.Kid, "persons-")
		kids[k.Kid] = true
	}
	require.Len(t, kids, 10)
}

func TestNewKeyManager_Persistent(t *testing.T) {
	ctx := context.Background()
	store := &memKeyStore{}
	sealer, err := cryptox.RandomMasterKey()
	require.NoError(t, err)

	opts := jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmES256,
		Issuer:    "iss",
		NumKeys:   2,
		Store:     store,
		Sealer:    sealer,
	}

	first, err := jwtx.NewKeyManager(ctx, opts)
	require.NoError(t, err)
	require.Len(t, store.keys, 2)
	for _, rec := range store.keys {
		require.NotContains(t, string(rec.PrivateKeyEncrypted), "PRIVATE KEY")
		require.Equal(t, jwtx.AlgorithmES256, rec.Algorithm)
		require.NotEmpty(t, rec.ID)
	}

	token, err := first.Signer().Sign(jwtx.NewAccessClaims("u", "user", "", time.Hour, "iss", nil, time.Now()))
	require.NoError(t, err)

	// A restart loads the same keys instead of generating new ones.
	second, err := jwtx.NewKeyManager(ctx, opts)
	require.NoError(t, err)
	require.Len(t, store.keys, 2)

	claims, err := second.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "u", claims.Subject)

	// Switching algorithm keeps old keys for verification and tops up signers.
	opts.Algorithm = jwtx.AlgorithmEdDSA
	third, err := jwtx.NewKeyManager(ctx, opts)
	require.NoError(t, err)
	require.Equal(t, 2, third.NumSigners())
	require.Equal(t, 4, third.KeySet.Len())
	require.Equal(t, jwtx.AlgorithmEdDSA, third.Signer().Alg())

	_, err = third.Verifier.Verify(token)
	require.NoError(t, err)

	// The wrong master key cannot open the stored keys.
	other, err := cryptox.RandomMasterKey()
	require.NoError(t, err)
	opts.Sealer = other
	_, err = jwtx.NewKeyManager(ctx, opts)
	require.Error(t, err)
}
