package personsdk

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/persons/pkg/jwtx"
)

// ============================================================================
// Auth Types
// ============================================================================

// User is an account as returned by the API. The password hash never leaves
// the server.
type User struct {
	ID        string `json:"id" example:"01JC8Z5W8X1Y2Z3A4B5C6D7E8F"`
	FirstName string `json:"firstName" example:"Ioan"`
	LastName  string `json:"lastName" example:"Popescu"`
	Email     string `json:"email" example:"ioan@example.com"`
	Role      string `json:"role" example:"user" enums:"user,admin"`
}

// IsAdmin reports whether u carries the admin role.
func (u User) IsAdmin() bool { return u.Role == "admin" }

type RegisterRequest struct {
	FirstName       string `json:"firstName" example:"Ioan"`
	LastName        string `json:"lastName" example:"Popescu"`
	Email           string `json:"email" example:"ioan@example.com"`
	Password        string `json:"password" example:"password123"`
	ConfirmPassword string `json:"confirmPassword" example:"password123"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"ioan@example.com"`
	Password string `json:"password" example:"password123"`
}

// BootstrapRequest creates the first admin account.
type BootstrapRequest struct {
	FirstName string `json:"firstName" example:"Root"`
	LastName  string `json:"lastName" example:"Admin"`
	Email     string `json:"email" example:"admin@example.com"`
	Password  string `json:"password" example:"change-me"`
}

// AuthResponse is returned by register, login and bootstrap.
type AuthResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJFZERTQSIsImtpZCI6InBlcnNvbnMtLi4uIn0..."`
	User  User   `json:"user"`
}

// ============================================================================
// Person Types
// ============================================================================

// Person is an identity record. Dates are YYYY-MM-DD.
type Person struct {
	ID          string    `json:"_id" example:"01JC8Z5W8X1Y2Z3A4B5C6D7E8G"`
	UserID      string    `json:"userId" example:"01JC8Z5W8X1Y2Z3A4B5C6D7E8F"`
	FirstName   string    `json:"firstName" example:"Ioan"`
	LastName    string    `json:"lastName" example:"Popescu"`
	CNP         string    `json:"cnp" example:"1850515123456"`
	BirthDate   string    `json:"birthDate" example:"1985-05-15"`
	BirthPlace  string    `json:"birthPlace" example:"București"`
	Nationality string    `json:"nationality" example:"Română"`
	IDNumber    string    `json:"idNumber" example:"AB123456"`
	IssueDate   string    `json:"issueDate" example:"2020-01-10"`
	ExpiryDate  string    `json:"expiryDate" example:"2030-01-10"`
	IDType      string    `json:"idType" example:"Buletin de identitate" enums:"Buletin de identitate,Pasaport,Permis de conducere"`
	IDPhoto     *string   `json:"idPhoto"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Owner identifies the user a person belongs to in the admin listing.
type Owner struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// PersonWithOwner is one row of the admin listing.
type PersonWithOwner struct {
	Person
	Owner Owner `json:"owner"`
}

// PersonInput is the body of create and update requests. Nil fields are
// left out of the request, so on update they keep their stored value.
type PersonInput struct {
	FirstName   *string `json:"firstName,omitempty" example:"Ioan"`
	LastName    *string `json:"lastName,omitempty" example:"Popescu"`
	CNP         *string `json:"cnp,omitempty" example:"1850515123456"`
	BirthDate   *string `json:"birthDate,omitempty" example:"1985-05-15"`
	BirthPlace  *string `json:"birthPlace,omitempty" example:"București"`
	Nationality *string `json:"nationality,omitempty" example:"Română"`
	IDNumber    *string `json:"idNumber,omitempty" example:"AB123456"`
	IssueDate   *string `json:"issueDate,omitempty" example:"2020-01-10"`
	ExpiryDate  *string `json:"expiryDate,omitempty" example:"2030-01-10"`
	IDType      *string `json:"idType,omitempty" example:"Pasaport"`

	// IDPhoto distinguishes absent (keep), null (clear) and a value.
	IDPhoto Nullable[string] `json:"idPhoto,omitzero" swaggertype:"string"`
}

// PersonResponse wraps a person returned by create and update.
type PersonResponse struct {
	Message string `json:"message" example:"Person created successfully"`
	Person  Person `json:"person"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message" example:"Person deleted successfully"`
}

// String returns a pointer to s for use in PersonInput.
func String(s string) *string { return &s }

// ============================================================================
// Nullable
// ============================================================================

// Nullable is a JSON value that can be absent, null or set. Pair it with the
// omitzero tag option so an unset value is left out entirely.
type Nullable[T any] struct {
	Value T
	Valid bool // Value is meaningful; false encodes null
	Set   bool // the field was present
}

// Some wraps v as a present, non-null value.
func Some[T any](v T) Nullable[T] { return Nullable[T]{Value: v, Valid: true, Set: true} }

// Null returns a present null value.
func Null[T any]() Nullable[T] { return Nullable[T]{Set: true} }

func (n Nullable[T]) IsZero() bool { return !n.Set }

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		n.Value, n.Valid = zero, false
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Ptr returns the value as a pointer, nil when null or unset.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// ============================================================================
// System Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz. Only readyz fills Checks.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty" example:"1h23m45s"`
	Version string        `json:"version,omitempty" example:"v0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks is the status of each dependency readyz probes.
type HealthChecks struct {
	Database string `json:"database" example:"ok"`
	Signer   string `json:"signer" example:"ok"`
}

// JWKSResponse is the key set published at /.well-known/jwks.json.
type JWKSResponse jwtx.JWKS
