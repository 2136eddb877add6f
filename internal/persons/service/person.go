package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/persons/internal/persons/domain"
	"github.com/aussiebroadwan/persons/internal/persons/store"
	"github.com/aussiebroadwan/persons/pkg/idx"
	"github.com/aussiebroadwan/persons/pkg/slogx"
)

type PersonService struct {
	Store store.Store
}

// PersonInput carries the client-supplied fields. A nil field was absent
// from the request. IDPhotoSet distinguishes an explicit null photo (clear
// it) from an absent one (keep it).
type PersonInput struct {
	FirstName   *string
	LastName    *string
	CNP         *string
	BirthDate   *string
	BirthPlace  *string
	Nationality *string
	IDNumber    *string
	IssueDate   *string
	ExpiryDate  *string
	IDType      *string

	IDPhoto    *string
	IDPhotoSet bool
}

// Create stores a new person owned by the caller.
func (s *PersonService) Create(ctx context.Context, caller domain.Identity, in PersonInput) (domain.Person, error) {
	l := slogx.FromContext(ctx)

	if caller.UserID == "" {
		return domain.Person{}, domain.Unauthenticated(domain.MsgInvalidToken)
	}

	for _, f := range []*string{
		in.FirstName, in.LastName, in.CNP, in.BirthDate, in.BirthPlace,
		in.Nationality, in.IDNumber, in.IssueDate, in.ExpiryDate,
	} {
		if f == nil || strings.TrimSpace(*f) == "" {
			return domain.Person{}, domain.Validation(domain.MsgPersonFieldsRequired)
		}
	}

	if in.IDType != nil && strings.TrimSpace(*in.IDType) == "" {
		in.IDType = nil
	}

	now := time.Now().UTC()
	p := domain.Person{
		ID:        idx.New().String(),
		UserID:    caller.UserID,
		IDType:    domain.DefaultIDType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := apply(&p, in); err != nil {
		return domain.Person{}, err
	}

	if err := s.Store.Persons().CreatePerson(ctx, p); err != nil {
		l.Error("failed to create person", slog.Any("error", err))
		return domain.Person{}, err
	}

	l.Info("person created", slog.String("person_id", p.ID))
	return p, nil
}

// List returns the caller's own persons, newest first.
func (s *PersonService) List(ctx context.Context, caller domain.Identity) ([]domain.Person, error) {
	return s.Store.Persons().ListPersonsByOwner(ctx, caller.UserID)
}

// Get returns one person the caller may see.
func (s *PersonService) Get(ctx context.Context, caller domain.Identity, id string) (domain.Person, error) {
	return loadAccessible(ctx, s.Store.Persons(), caller, id, "view")
}

// Update applies the present fields of in to the person. The ownership check
// and the write happen in one transaction.
func (s *PersonService) Update(ctx context.Context, caller domain.Identity, id string, in PersonInput) (domain.Person, error) {
	l := slogx.FromContext(ctx)

	var updated domain.Person
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := loadAccessible(ctx, tx.Persons(), caller, id, "update")
		if err != nil {
			return err
		}

		for _, f := range []*string{
			in.FirstName, in.LastName, in.CNP, in.BirthDate, in.BirthPlace,
			in.Nationality, in.IDNumber, in.IssueDate, in.ExpiryDate,
		} {
			if f != nil && strings.TrimSpace(*f) == "" {
				return domain.Validation(domain.MsgPersonFieldsRequired)
			}
		}
		if err := apply(&p, in); err != nil {
			return err
		}

		p.UpdatedAt = time.Now().UTC()
		if !p.UpdatedAt.After(p.CreatedAt) {
			p.UpdatedAt = p.CreatedAt.Add(time.Microsecond)
		}

		if err := tx.Persons().UpdatePerson(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		if !isDomainError(err) {
			l.Error("failed to update person", slog.Any("error", err))
		}
		return domain.Person{}, err
	}

	l.Info("person updated", slog.String("person_id", updated.ID))
	return updated, nil
}

// Delete removes a person the caller may modify.
func (s *PersonService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := loadAccessible(ctx, tx.Persons(), caller, id, "delete")
		if err != nil {
			return err
		}
		err = tx.Persons().DeletePerson(ctx, p.ID)
		if errors.Is(err, store.ErrNotFound) {
			return domain.NotFound(domain.MsgPersonNotFound)
		}
		return err
	})
	if err != nil {
		if !isDomainError(err) {
			l.Error("failed to delete person", slog.Any("error", err))
		}
		return err
	}

	l.Info("person deleted", slog.String("person_id", id))
	return nil
}

// ListAll returns every person with its owner. Admins only.
func (s *PersonService) ListAll(ctx context.Context, caller domain.Identity) ([]domain.PersonWithOwner, error) {
	if !caller.Role.Is(domain.RoleAdmin) {
		return nil, domain.Forbidden(domain.MsgAdminRequired)
	}
	return s.Store.Persons().ListAllPersons(ctx)
}

func loadAccessible(ctx context.Context, persons store.Persons, caller domain.Identity, id, action string) (domain.Person, error) {
	pid, err := idx.Parse(id)
	if err != nil {
		return domain.Person{}, domain.NotFound(domain.MsgPersonNotFound)
	}

	p, err := persons.GetPersonByID(ctx, pid.String())
	if errors.Is(err, store.ErrNotFound) {
		return domain.Person{}, domain.NotFound(domain.MsgPersonNotFound)
	}
	if err != nil {
		return domain.Person{}, err
	}

	if !domain.CanAccess(caller, p) {
		slogx.FromContext(ctx).Warn("person access denied",
			slog.String("person_id", p.ID),
			slog.String("action", action),
		)
		return domain.Person{}, domain.Forbidden(fmt.Sprintf("Not authorized to %s this person", action))
	}
	return p, nil
}

// apply copies every present field of in onto p and validates the result.
func apply(p *domain.Person, in PersonInput) error {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setString(&p.FirstName, in.FirstName)
	setString(&p.LastName, in.LastName)
	setString(&p.CNP, in.CNP)
	setString(&p.BirthPlace, in.BirthPlace)
	setString(&p.Nationality, in.Nationality)
	setString(&p.IDNumber, in.IDNumber)

	if !domain.ValidCNP(p.CNP) {
		return domain.Validation(domain.MsgInvalidCNP)
	}

	dates := []struct {
		field string
		src   *string
		dst   *domain.Date
	}{
		{"birthDate", in.BirthDate, &p.BirthDate},
		{"issueDate", in.IssueDate, &p.IssueDate},
		{"expiryDate", in.ExpiryDate, &p.ExpiryDate},
	}
	for _, d := range dates {
		if d.src == nil {
			continue
		}
		parsed, err := domain.ParseDate(*d.src)
		if err != nil {
			return domain.Validation("Invalid date for " + d.field)
		}
		*d.dst = parsed
	}

	if in.IDType != nil {
		t := domain.IDType(strings.TrimSpace(*in.IDType))
		if !t.Valid() {
			return domain.Validation(domain.MsgInvalidIDType)
		}
		p.IDType = t
	}

	if in.IDPhotoSet {
		p.IDPhoto = nil
		if in.IDPhoto != nil && *in.IDPhoto != "" {
			photo := *in.IDPhoto
			p.IDPhoto = &photo
		}
	}
	return nil
}

func isDomainError(err error) bool {
	var de *domain.Error
	return errors.As(err, &de)
}
