package jwtx

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJWK_PublicKeyRoundTrip(t *testing.T) {
	edPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tests := []struct {
		name string
		alg  string
		kty  string
		pub  any
	}{
		{"ed25519", AlgorithmEdDSA, "OKP", edPub},
		{"p256", AlgorithmES256, "EC", &ecKey.PublicKey},
		{"rsa", AlgorithmRS256, "RSA", &rsaKey.PublicKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, err := NewJWK("kid-1", tt.alg, tt.pub)
			require.NoError(t, err)
			require.Equal(t, tt.kty, j.Kty)
			require.Equal(t, "sig", j.Use)
			require.Equal(t, tt.alg, j.Alg)

			got, err := j.PublicKey()
			require.NoError(t, err)

			type equaler interface{ Equal(x crypto.PublicKey) bool }
			require.True(t, got.(equaler).Equal(tt.pub))
		})
	}
}

func TestJWK_NoPrivateMaterial(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	j, err := NewJWK("kid-ec", AlgorithmES256, &ecKey.PublicKey)
	require.NoError(t, err)

	raw, err := json.Marshal(JWKS{Keys: []JWK{j}})
	require.NoError(t, err)
	require.NotContains(t, string(raw), `"d"`)
	require.Contains(t, string(raw), `"kid":"kid-ec"`)
}

func TestJWK_UnsupportedKeys(t *testing.T) {
	p384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)

	_, err = NewJWK("k", AlgorithmES256, &p384.PublicKey)
	require.Error(t, err)

	_, err = NewJWK("k", AlgorithmEdDSA, "not a key")
	require.Error(t, err)

	_, err = JWK{Kty: "oct"}.PublicKey()
	require.Error(t, err)

	_, err = JWK{Kty: "OKP", Crv: "Ed25519", X: b64.EncodeToString([]byte("short"))}.PublicKey()
	require.Error(t, err)
}
