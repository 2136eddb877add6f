package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/persons/internal/persons/domain"
	"github.com/aussiebroadwan/persons/internal/persons/store"
	"github.com/aussiebroadwan/persons/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway postgres:16-alpine container and returns a
// migrated store connected to it.
func startPostgres(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres driver tests need docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "persons",
			"POSTGRES_PASSWORD": "persons",
			"POSTGRES_DB":       "persons",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://persons:persons@%s:%s/persons?sslmode=disable", host, port.Port())
	s, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestPostgresStore(t *testing.T) {
	s := startPostgres(t)
	ctx := context.Background()

	alice := domain.User{
		ID:           idx.New().String(),
		FirstName:    "Alice",
		LastName:     "Popa",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
	}
	require.NoError(t, s.Users().CreateUser(ctx, alice))

	dup := alice
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	got, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.ID)

	p := domain.Person{
		ID:          idx.New().String(),
		UserID:      alice.ID,
		FirstName:   "Ion",
		LastName:    "Popescu",
		CNP:         "1850315123456",
		BirthDate:   domain.NewDate(1985, time.March, 15),
		BirthPlace:  "Cluj-Napoca",
		Nationality: "Română",
		IDNumber:    "CJ123456",
		IssueDate:   domain.NewDate(2020, time.January, 10),
		ExpiryDate:  domain.NewDate(2030, time.January, 10),
		IDType:      domain.IDTypePassport,
	}
	require.NoError(t, s.Persons().CreatePerson(ctx, p))

	fetched, err := s.Persons().GetPersonByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "1985-03-15", fetched.BirthDate.String())
	require.Equal(t, domain.IDTypePassport, fetched.IDType)
	require.Nil(t, fetched.IDPhoto)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		fetched.LastName = "Ionescu"
		fetched.UpdatedAt = time.Now().UTC()
		return tx.Persons().UpdatePerson(ctx, fetched)
	})
	require.NoError(t, err)

	all, err := s.Persons().ListAllPersons(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Ionescu", all[0].LastName)
	require.Equal(t, "alice@example.com", all[0].Owner.Email)

	require.NoError(t, s.Persons().DeletePerson(ctx, p.ID))
	require.ErrorIs(t, s.Persons().DeletePerson(ctx, p.ID), store.ErrNotFound)

	require.NoError(t, s.SigningKeys().CreateSigningKey(ctx, domain.SigningKey{
		ID: idx.New().String(), Kid: "persons-x", Algorithm: "EdDSA", PrivateKeyEncrypted: []byte("sealed"), CreatedAt: time.Now(),
	}))
	keys, err := s.SigningKeys().ListSigningKeys(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	require.Equal(t, []byte("sealed"), keys[0].PrivateKeyEncrypted)
}
