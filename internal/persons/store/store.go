package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/persons/internal/persons/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are exposed as methods so a transaction can
// hand out the same repositories bound to itself.
type Store interface {
	Users() Users
	Persons() Persons
	SigningKeys() SigningKeys

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user. A taken email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects an already normalised email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns all users, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdatePasswordHash sets password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	CountUsersByRole(ctx context.Context, role domain.Role) (int, error)
}

type Persons interface {
	CreatePerson(ctx context.Context, p domain.Person) error

	GetPersonByID(ctx context.Context, id string) (domain.Person, error)

	// FindPersonByOwnerCNP is used by the seeder to stay idempotent.
	FindPersonByOwnerCNP(ctx context.Context, userID, cnp string) (domain.Person, error)

	// ListPersonsByOwner returns the owner's persons, newest first.
	ListPersonsByOwner(ctx context.Context, userID string) ([]domain.Person, error)

	// ListAllPersons returns every person joined with its owner, newest first.
	ListAllPersons(ctx context.Context) ([]domain.PersonWithOwner, error)

	// UpdatePerson overwrites every mutable column of p.ID. The owner and
	// created_at are never changed.
	UpdatePerson(ctx context.Context, p domain.Person) error

	// DeletePerson returns ErrNotFound when no row was removed.
	DeletePerson(ctx context.Context, id string) error
}

type SigningKeys interface {
	// CreateSigningKey stores a new signing key with encrypted private key material.
	CreateSigningKey(ctx context.Context, key domain.SigningKey) error

	// ListSigningKeys returns all keys, oldest first.
	ListSigningKeys(ctx context.Context) ([]domain.SigningKey, error)
}
