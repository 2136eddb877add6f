package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/persons/internal/persons/domain"
	"github.com/stretchr/testify/require"
)

func TestPersonScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, RegisterInput{
		FirstName: "Alice", LastName: "A", Email: "alice@example.com",
		Password: "pw123", ConfirmPassword: "pw123",
	})
	require.NoError(t, err)

	login, err := env.auth.Login(ctx, "alice@example.com", "pw123")
	require.NoError(t, err)
	alice, err := env.auth.VerifyToken(ctx, login.Token)
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, alice.UserID)

	p, err := env.persons.Create(ctx, alice, validPerson())
	require.NoError(t, err)
	require.Equal(t, alice.UserID, p.UserID)

	mine, err := env.persons.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, p.ID, mine[0].ID)

	other := env.register(t, "other@example.com")
	theirs, err := env.persons.List(ctx, other)
	require.NoError(t, err)
	require.Empty(t, theirs)
}

func TestCreatePerson_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner@example.com")

	in := validPerson()
	in.IDType = ptr(string(domain.IDTypePassport))
	in.IDPhoto = ptr("data:image/png;base64,iVBORw0KGgo=")
	in.IDPhotoSet = true

	created, err := env.persons.Create(ctx, owner, in)
	require.NoError(t, err)

	got, err := env.persons.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Ion", got.FirstName)
	require.Equal(t, "Pop", got.LastName)
	require.Equal(t, "1234567890123", got.CNP)
	require.Equal(t, "1980-01-02", got.BirthDate.String())
	require.Equal(t, "Sibiu", got.BirthPlace)
	require.Equal(t, "Română", got.Nationality)
	require.Equal(t, "SB123456", got.IDNumber)
	require.Equal(t, "2020-03-04", got.IssueDate.String())
	require.Equal(t, "2030-03-04", got.ExpiryDate.String())
	require.Equal(t, domain.IDTypePassport, got.IDType)
	require.NotNil(t, got.IDPhoto)
	require.Equal(t, *in.IDPhoto, *got.IDPhoto)
}

func TestCreatePerson_Defaults(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")

	in := validPerson()
	in.IDType = ptr("")
	p, err := env.persons.Create(context.Background(), owner, in)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultIDType, p.IDType)
	require.Nil(t, p.IDPhoto)
}

func TestCreatePerson_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner@example.com")

	tests := []struct {
		name   string
		mutate func(*PersonInput)
		msg    string
	}{
		{"missing first name", func(in *PersonInput) { in.FirstName = nil }, domain.MsgPersonFieldsRequired},
		{"blank id number", func(in *PersonInput) { in.IDNumber = ptr(" ") }, domain.MsgPersonFieldsRequired},
		{"short cnp", func(in *PersonInput) { in.CNP = ptr("123") }, domain.MsgInvalidCNP},
		{"cnp with letters", func(in *PersonInput) { in.CNP = ptr("12345678901ab") }, domain.MsgInvalidCNP},
		{"fourteen digit cnp", func(in *PersonInput) { in.CNP = ptr("12345678901234") }, domain.MsgInvalidCNP},
		{"bad birth date", func(in *PersonInput) { in.BirthDate = ptr("02/01/1980") }, "Invalid date for birthDate"},
		{"bad expiry", func(in *PersonInput) { in.ExpiryDate = ptr("2030-13-01") }, "Invalid date for expiryDate"},
		{"unknown id type", func(in *PersonInput) { in.IDType = ptr("Library card") }, domain.MsgInvalidIDType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validPerson()
			tt.mutate(&in)
			_, err := env.persons.Create(ctx, owner, in)
			require.ErrorIs(t, err, domain.ErrValidation)
			require.Equal(t, tt.msg, domain.Message(err, ""))
		})
	}

	list, err := env.persons.List(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestPersonOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.register(t, "owner@example.com")
	intruder := env.register(t, "intruder@example.com")
	admin := env.admin(t)

	p, err := env.persons.Create(ctx, owner, validPerson())
	require.NoError(t, err)

	_, err = env.persons.Get(ctx, intruder, p.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.persons.Update(ctx, intruder, p.ID, PersonInput{FirstName: ptr("Hacked")})
	require.ErrorIs(t, err, domain.ErrForbidden)

	err = env.persons.Delete(ctx, intruder, p.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	got, err := env.persons.Get(ctx, owner, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Ion", got.FirstName)

	got, err = env.persons.Get(ctx, admin, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)

	updated, err := env.persons.Update(ctx, admin, p.ID, PersonInput{FirstName: ptr("Ioan")})
	require.NoError(t, err)
	require.Equal(t, "Ioan", updated.FirstName)
	require.Equal(t, owner.UserID, updated.UserID)

	require.NoError(t, env.persons.Delete(ctx, admin, p.ID))
	_, err = env.persons.Get(ctx, owner, p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePerson(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner@example.com")

	in := validPerson()
	in.IDPhoto = ptr("https://example.com/photo.png")
	in.IDPhotoSet = true
	p, err := env.persons.Create(ctx, owner, in)
	require.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		got, err := env.persons.Update(ctx, owner, p.ID, PersonInput{
			BirthPlace: ptr("Brașov"),
			IDType:     ptr(string(domain.IDTypeDrivingLicence)),
		})
		require.NoError(t, err)
		require.Equal(t, "Brașov", got.BirthPlace)
		require.Equal(t, domain.IDTypeDrivingLicence, got.IDType)
		require.Equal(t, "Ion", got.FirstName)
		require.NotNil(t, got.IDPhoto)
		require.True(t, got.UpdatedAt.After(got.CreatedAt))
		require.True(t, got.CreatedAt.Equal(p.CreatedAt))
	})

	t.Run("cnp is validated", func(t *testing.T) {
		_, err := env.persons.Update(ctx, owner, p.ID, PersonInput{CNP: ptr("12")})
		require.ErrorIs(t, err, domain.ErrValidation)
		require.Equal(t, domain.MsgInvalidCNP, domain.Message(err, ""))

		got, err := env.persons.Get(ctx, owner, p.ID)
		require.NoError(t, err)
		require.Equal(t, "1234567890123", got.CNP)
	})

	t.Run("empty required field is rejected", func(t *testing.T) {
		_, err := env.persons.Update(ctx, owner, p.ID, PersonInput{LastName: ptr("")})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("empty id type is rejected", func(t *testing.T) {
		_, err := env.persons.Update(ctx, owner, p.ID, PersonInput{IDType: ptr("")})
		require.ErrorIs(t, err, domain.ErrValidation)
		require.Equal(t, domain.MsgInvalidIDType, domain.Message(err, ""))
	})

	t.Run("explicit null clears photo", func(t *testing.T) {
		got, err := env.persons.Update(ctx, owner, p.ID, PersonInput{IDPhotoSet: true})
		require.NoError(t, err)
		require.Nil(t, got.IDPhoto)

		got, err = env.persons.Get(ctx, owner, p.ID)
		require.NoError(t, err)
		require.Nil(t, got.IDPhoto)
	})
}

func TestDeletePerson_Missing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner@example.com")

	for _, id := range []string{"01J00000000000000000000000", "not-an-id"} {
		for range 2 {
			err := env.persons.Delete(ctx, owner, id)
			require.ErrorIs(t, err, domain.ErrNotFound)
			require.Equal(t, domain.MsgPersonNotFound, domain.Message(err, ""))
		}
	}

	p, err := env.persons.Create(ctx, owner, validPerson())
	require.NoError(t, err)
	require.NoError(t, env.persons.Delete(ctx, owner, p.ID))
	for range 2 {
		require.ErrorIs(t, env.persons.Delete(ctx, owner, p.ID), domain.ErrNotFound)
	}
}

func TestListAllPersons(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.register(t, "a@example.com")
	b := env.register(t, "b@example.com")
	admin := env.admin(t)

	_, err := env.persons.Create(ctx, a, validPerson())
	require.NoError(t, err)
	_, err = env.persons.Create(ctx, b, validPerson())
	require.NoError(t, err)

	_, err = env.persons.ListAll(ctx, a)
	require.ErrorIs(t, err, domain.ErrForbidden)
	require.Equal(t, domain.MsgAdminRequired, domain.Message(err, ""))

	all, err := env.persons.ListAll(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "b@example.com", all[0].Owner.Email)
	require.Equal(t, "a@example.com", all[1].Owner.Email)
}
