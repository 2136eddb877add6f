package jwtx

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/aussiebroadwan/persons/pkg/cryptox"
	"github.com/aussiebroadwan/persons/pkg/idx"
)

const (
	defaultNumKeys = 3
	maxNumKeys     = 10
	kidPrefix      = "persons-"
)

// SigningKeyRecord is a signing key as persisted by a KeyStore. The private
// key is sealed before it reaches the store.
type SigningKeyRecord struct {
	ID                  string
	Kid                 string
	Algorithm           string
	PrivateKeyEncrypted []byte
	CreatedAt           time.Time
}

// KeyStore persists signing keys so tokens survive restarts.
type KeyStore interface {
	ListSigningKeys(ctx context.Context) ([]SigningKeyRecord, error)
	CreateSigningKey(ctx context.Context, key SigningKeyRecord) error
}

// Sealer encrypts private key material at rest. cryptox.MasterKey satisfies it.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

var _ Sealer = (*cryptox.MasterKey)(nil)

// KeyManagerOptions configures a KeyManager.
type KeyManagerOptions struct {
	// Algorithm used for signing. Supported: "EdDSA", "ES256", "RS256".
	Algorithm string

	// Issuer is stamped into and required on every token.
	Issuer string

	// Audience values tokens must carry. Empty disables the check.
	Audience []string

	// RSABits is the modulus size for RS256 keys. Defaults to 4096.
	RSABits int

	// NumKeys is how many signing keys to keep. Defaults to 3, capped at 10.
	NumKeys int

	// Store enables persistent mode. Nil means keys live only in memory.
	Store KeyStore

	// Sealer protects keys written to Store. Required when Store is set.
	Sealer Sealer
}

// KeyManager owns the signing keys of one instance and the KeySet used to
// verify and publish them.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	algorithm string

	mu      sync.RWMutex
	signers []Signer
}

// NewKeyManager builds a KeyManager. Without a Store, NumKeys fresh keys are
// generated and every token becomes invalid on restart. With a Store, stored
// keys are loaded, any key whose algorithm differs from Algorithm is kept for
// verification only, and new keys are generated and stored until NumKeys
// signing keys exist.
func NewKeyManager(ctx context.Context, opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}
	if _, err := signingMethod(opts.Algorithm); err != nil {
		return nil, err
	}
	if opts.Store != nil && opts.Sealer == nil {
		return nil, errors.New("jwtx: Sealer is required with a key store")
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = defaultNumKeys
	}
	if numKeys > maxNumKeys {
		numKeys = maxNumKeys
	}

	keyset := NewKeySet()
	signers := make([]Signer, 0, numKeys)

	if opts.Store != nil {
		records, err := opts.Store.ListSigningKeys(ctx)
		if err != nil {
			return nil, fmt.Errorf("jwtx: load signing keys: %w", err)
		}

		for _, rec := range records {
			pemKey, err := opts.Sealer.Open(rec.PrivateKeyEncrypted)
			if err != nil {
				return nil, fmt.Errorf("jwtx: decrypt key %s: %w", rec.Kid, err)
			}
			s, err := NewSigner(rec.Algorithm, rec.Kid, pemKey)
			if err != nil {
				return nil, fmt.Errorf("jwtx: load key %s: %w", rec.Kid, err)
			}
			if err := keyset.AddSigner(s); err != nil {
				return nil, fmt.Errorf("jwtx: publish key %s: %w", rec.Kid, err)
			}
			if rec.Algorithm == opts.Algorithm && len(signers) < numKeys {
				signers = append(signers, s)
			}
		}
	}

	for len(signers) < numKeys {
		kid, err := newKeyID()
		if err != nil {
			return nil, err
		}
		pemKey, err := generateKey(opts.Algorithm, opts.RSABits)
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate %s key: %w", opts.Algorithm, err)
		}
		s, err := NewSigner(opts.Algorithm, kid, pemKey)
		if err != nil {
			return nil, err
		}

		if opts.Store != nil {
			sealed, err := opts.Sealer.Seal(pemKey)
			if err != nil {
				return nil, fmt.Errorf("jwtx: encrypt key %s: %w", kid, err)
			}
			err = opts.Store.CreateSigningKey(ctx, SigningKeyRecord{
				ID:                  idx.New().String(),
				Kid:                 kid,
				Algorithm:           opts.Algorithm,
				PrivateKeyEncrypted: sealed,
				CreatedAt:           time.Now().UTC(),
			})
			if err != nil {
				return nil, fmt.Errorf("jwtx: store key %s: %w", kid, err)
			}
		}

		if err := keyset.AddSigner(s); err != nil {
			return nil, fmt.Errorf("jwtx: publish key %s: %w", kid, err)
		}
		signers = append(signers, s)
	}

	return &KeyManager{
		Verifier:  NewVerifier(keyset, opts.Issuer, opts.Audience),
		KeySet:    keyset,
		algorithm: opts.Algorithm,
		signers:   signers,
	}, nil
}

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string {
	return km.algorithm
}

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.NumSigners() > 0 && km.KeySet.IsReady()
}

// Signer returns a randomly chosen signing key.
func (km *KeyManager) Signer() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	default:
		return km.signers[rand.IntN(len(km.signers))]
	}
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

func newKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("jwtx: generate key ID: %w", err)
	}
	return kidPrefix + token, nil
}
