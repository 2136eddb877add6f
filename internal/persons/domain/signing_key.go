package domain

import "time"

// SigningKey is a persisted JWT signing key. The private key is PKCS#8 PEM
// sealed with the instance master key.
type SigningKey struct {
	ID                  string
	Kid                 string
	Algorithm           string
	PrivateKeyEncrypted []byte
	CreatedAt           time.Time
}
