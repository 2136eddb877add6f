package jwtx

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"fmt"

	"github.com/aussiebroadwan/persons/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// Supported signing algorithms.
const (
	AlgorithmEdDSA = "EdDSA"
	AlgorithmES256 = "ES256"
	AlgorithmRS256 = "RS256"
)

// Signer signs access tokens with one private key.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
}

type keySigner struct {
	kid    string
	method jwt.SigningMethod
	key    crypto.Signer
	jwk    JWK
}

// NewSigner loads a PKCS#8 PEM private key for alg. The key type has to match
// the algorithm: Ed25519 for EdDSA, P-256 for ES256, RSA for RS256.
func NewSigner(alg, kid string, pemKey []byte) (Signer, error) {
	method, err := signingMethod(alg)
	if err != nil {
		return nil, err
	}

	parsed, err := cryptox.ParsePrivateKey(pemKey)
	if err != nil {
		return nil, fmt.Errorf("jwtx: %w", err)
	}

	key, err := checkKeyType(alg, parsed)
	if err != nil {
		return nil, err
	}

	jwk, err := NewJWK(kid, alg, key.Public())
	if err != nil {
		return nil, err
	}

	return &keySigner{kid: kid, method: method, key: key, jwk: jwk}, nil
}

func (s *keySigner) Alg() string    { return s.method.Alg() }
func (s *keySigner) KID() string    { return s.kid }
func (s *keySigner) PublicJWK() JWK { return s.jwk }

// Sign serialises claims into a compact JWS with the kid header set.
func (s *keySigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(s.method, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

func signingMethod(alg string) (jwt.SigningMethod, error) {
	switch alg {
	case AlgorithmEdDSA:
		return jwt.SigningMethodEdDSA, nil
	case AlgorithmES256:
		return jwt.SigningMethodES256, nil
	case AlgorithmRS256:
		return jwt.SigningMethodRS256, nil
	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: EdDSA, ES256, RS256)", alg)
	}
}

func checkKeyType(alg string, key any) (crypto.Signer, error) {
	switch k := key.(type) {
	case ed25519.PrivateKey:
		if alg == AlgorithmEdDSA {
			return k, nil
		}
	case *ecdsa.PrivateKey:
		if alg == AlgorithmES256 && k.Curve == elliptic.P256() {
			return k, nil
		}
	case *rsa.PrivateKey:
		if alg == AlgorithmRS256 {
			return k, nil
		}
	}
	return nil, fmt.Errorf("jwtx: %T cannot sign %s", key, alg)
}

// generateKey creates a fresh PEM private key suitable for alg.
func generateKey(alg string, rsaBits int) ([]byte, error) {
	switch alg {
	case AlgorithmEdDSA:
		return cryptox.GenerateEd25519Key()
	case AlgorithmES256:
		return cryptox.GenerateP256Key()
	case AlgorithmRS256:
		if rsaBits == 0 {
			rsaBits = 4096
		}
		return cryptox.GenerateRSAKey(rsaBits)
	default:
		_, err := signingMethod(alg)
		return nil, err
	}
}
