package jwtx

import (
	"crypto"
	"errors"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

type verificationKey struct {
	alg string
	pub crypto.PublicKey
}

// KeySet holds the public halves of every key tokens may be signed with. It
// backs both verification and the published JWKS and is safe for concurrent
// use.
type KeySet struct {
	mu   sync.RWMutex
	jwks JWKS
	keys map[string]verificationKey
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]verificationKey)}
}

// AddSigner publishes the public key of s.
func (k *KeySet) AddSigner(s Signer) error {
	return k.AddJWK(s.PublicJWK())
}

// AddJWK registers j. Adding a kid that is already present replaces it.
func (k *KeySet) AddJWK(j JWK) error {
	if j.Kid == "" {
		return errors.New("jwtx: JWK without kid")
	}
	if _, err := signingMethod(j.Alg); err != nil {
		return err
	}
	pub, err := j.PublicKey()
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if _, exists := k.keys[j.Kid]; exists {
		for i := range k.jwks.Keys {
			if k.jwks.Keys[i].Kid == j.Kid {
				k.jwks.Keys = append(k.jwks.Keys[:i], k.jwks.Keys[i+1:]...)
				break
			}
		}
	}
	k.keys[j.Kid] = verificationKey{alg: j.Alg, pub: pub}
	k.jwks.Keys = append(k.jwks.Keys, j)
	return nil
}

// Lookup returns the algorithm and public key registered under kid.
func (k *KeySet) Lookup(kid string) (string, crypto.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if vk, ok := k.keys[kid]; ok {
		return vk.alg, vk.pub, nil
	}
	return "", nil, ErrNoKey
}

// PublicJWKS returns a copy of the set for HTTP serving.
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()
	keys := make([]JWK, len(k.jwks.Keys))
	copy(keys, k.jwks.Keys)
	return JWKS{Keys: keys}
}

// Len is the number of keys in the set.
func (k *KeySet) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys)
}

// IsReady reports whether at least one key is loaded.
func (k *KeySet) IsReady() bool { return k.Len() > 0 }
