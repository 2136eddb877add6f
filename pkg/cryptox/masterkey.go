package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// MasterKey is the AES-256 key that seals signing keys at rest.
type MasterKey struct {
	aead cipher.AEAD
}

// LoadMasterKey derives a MasterKey from the contents of path. The file may
// hold any secret; it is hashed down to 32 bytes with SHA-256.
func LoadMasterKey(path string) (*MasterKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cryptox: read master key: %w", err)
	}
	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return nil, errors.New("cryptox: master key file is empty")
	}
	return NewMasterKey([]byte(secret))
}

// RandomMasterKey returns a throwaway MasterKey. Anything sealed with it is
// unreadable after the process exits.
func RandomMasterKey() (*MasterKey, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("cryptox: generate master key: %w", err)
	}
	return NewMasterKey(secret)
}

// NewMasterKey derives a MasterKey from arbitrary secret material.
func NewMasterKey(secret []byte) (*MasterKey, error) {
	if len(secret) == 0 {
		return nil, errors.New("cryptox: empty master key secret")
	}
	sum := sha256.Sum256(secret)

	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, fmt.Errorf("cryptox: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create GCM: %w", err)
	}
	return &MasterKey{aead: aead}, nil
}

// Seal encrypts plaintext with AES-256-GCM. Output layout is
// nonce || ciphertext || tag.
func (k *MasterKey) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, k.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cryptox: generate nonce: %w", err)
	}
	return k.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal. Tampered or foreign ciphertexts fail authentication.
func (k *MasterKey) Open(sealed []byte) ([]byte, error) {
	n := k.aead.NonceSize()
	if len(sealed) < n+k.aead.Overhead() {
		return nil, errors.New("cryptox: ciphertext too short")
	}
	plain, err := k.aead.Open(nil, sealed[:n], sealed[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("cryptox: decrypt: %w", err)
	}
	return plain, nil
}
