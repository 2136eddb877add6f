package domain

import (
	"net/mail"
	"strings"
	"time"
)

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // trimmed, lower-case
	PasswordHash string // argon2id PHC, or legacy bcrypt
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail is applied before every store write and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail accepts a bare addr-spec with a dotted domain.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	return at > 0 && strings.Contains(email[at+1:], ".")
}
