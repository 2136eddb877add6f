package jwtx_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/persons/pkg/cryptox"
	"github.com/aussiebroadwan/persons/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, alg string) *jwtx.KeyManager {
	t.Helper()
	km, err := jwtx.NewKeyManager(context.Background(), jwtx.KeyManagerOptions{
		Algorithm: alg,
		Issuer:    "persons-api",
		Audience:  []string{"persons"},
		RSABits:   2048,
		NumKeys:   1,
	})
	require.NoError(t, err)
	return km
}

func sign(t *testing.T, km *jwtx.KeyManager, c jwtx.Claims) string {
	t.Helper()
	token, err := km.Signer().Sign(c)
	require.NoError(t, err)
	return token
}

func TestVerify_Failures(t *testing.T) {
	km := newManager(t, jwtx.AlgorithmEdDSA)
	now := time.Now()

	t.Run("expired", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u", "user", "", time.Minute, "persons-api", []string{"persons"}, now.Add(-2*time.Hour))
		_, err := km.Verifier.Verify(sign(t, km, c))
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u", "user", "", time.Hour, "someone-else", []string{"persons"}, now)
		_, err := km.Verifier.Verify(sign(t, km, c))
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u", "user", "", time.Hour, "persons-api", []string{"billing"}, now)
		_, err := km.Verifier.Verify(sign(t, km, c))
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("tampered signature", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u", "user", "", time.Hour, "persons-api", []string{"persons"}, now)
		token := sign(t, km, c)
		parts := strings.Split(token, ".")
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		parts[2] = string(sig)
		_, err := km.Verifier.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := km.Verifier.Verify("not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("foreign key", func(t *testing.T) {
		other := newManager(t, jwtx.AlgorithmEdDSA)
		c := jwtx.NewAccessClaims("u", "user", "", time.Hour, "persons-api", []string{"persons"}, now)
		_, err := km.Verifier.Verify(sign(t, other, c))
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("hmac rejected", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u", "user", "", time.Hour, "persons-api", []string{"persons"}, now)
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
		tok.Header["kid"] = km.Signer().KID()
		s, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = km.Verifier.Verify(s)
		require.Error(t, err)
	})
}

func TestVerify_AlgorithmBoundToKey(t *testing.T) {
	// An ES256 key published under an EdDSA signer's kid must not verify.
	ed := newManager(t, jwtx.AlgorithmEdDSA)

	pemKey, err := cryptox.GenerateP256Key()
	require.NoError(t, err)
	es, err := jwtx.NewSigner(jwtx.AlgorithmES256, ed.Signer().KID(), pemKey)
	require.NoError(t, err)

	c := jwtx.NewAccessClaims("u", "user", "", time.Hour, "persons-api", []string{"persons"}, time.Now())
	token, err := es.Sign(c)
	require.NoError(t, err)

	_, err = ed.Verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrAlgMismatch)
}

func TestNewSigner_KeyTypeMismatch(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	_, err = jwtx.NewSigner(jwtx.AlgorithmRS256, "k", pemKey)
	require.Error(t, err)

	_, err = jwtx.NewSigner("none", "k", pemKey)
	require.Error(t, err)

	s, err := jwtx.NewSigner(jwtx.AlgorithmEdDSA, "k", pemKey)
	require.NoError(t, err)
	require.Equal(t, "k", s.KID())
	require.Equal(t, "k", s.PublicJWK().Kid)
}

func TestKeySet(t *testing.T) {
	ks := jwtx.NewKeySet()
	require.False(t, ks.IsReady())

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	s, err := jwtx.NewSigner(jwtx.AlgorithmEdDSA, "k1", pemKey)
	require.NoError(t, err)

	require.NoError(t, ks.AddSigner(s))
	require.NoError(t, ks.AddSigner(s))
	require.Equal(t, 1, ks.Len())
	require.Len(t, ks.PublicJWKS().Keys, 1)

	alg, pub, err := ks.Lookup("k1")
	require.NoError(t, err)
	require.Equal(t, jwtx.AlgorithmEdDSA, alg)
	require.NotNil(t, pub)

	_, _, err = ks.Lookup("nope")
	require.ErrorIs(t, err, jwtx.ErrNoKey)

	require.Error(t, ks.AddJWK(jwtx.JWK{Kty: "OKP"}))
}
