package http

import (
	"github.com/aussiebroadwan/persons/internal/persons/domain"
	"github.com/aussiebroadwan/persons/internal/persons/service"
	"github.com/aussiebroadwan/persons/pkg/personsdk"
)

func toUser(u domain.User) personsdk.User {
	return personsdk.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role.String(),
	}
}

func toPerson(p domain.Person) personsdk.Person {
	return personsdk.Person{
		ID:          p.ID,
		UserID:      p.UserID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		CNP:         p.CNP,
		BirthDate:   p.BirthDate.String(),
		BirthPlace:  p.BirthPlace,
		Nationality: p.Nationality,
		IDNumber:    p.IDNumber,
		IssueDate:   p.IssueDate.String(),
		ExpiryDate:  p.ExpiryDate.String(),
		IDType:      string(p.IDType),
		IDPhoto:     p.IDPhoto,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPersonWithOwner(p domain.PersonWithOwner) personsdk.PersonWithOwner {
	return personsdk.PersonWithOwner{
		Person: toPerson(p.Person),
		Owner: personsdk.Owner{
			ID:        p.Owner.ID,
			FirstName: p.Owner.FirstName,
			LastName:  p.Owner.LastName,
			Email:     p.Owner.Email,
		},
	}
}

func fromPersonInput(in personsdk.PersonInput) service.PersonInput {
	return service.PersonInput{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		CNP:         in.CNP,
		BirthDate:   in.BirthDate,
		BirthPlace:  in.BirthPlace,
		Nationality: in.Nationality,
		IDNumber:    in.IDNumber,
		IssueDate:   in.IssueDate,
		ExpiryDate:  in.ExpiryDate,
		IDType:      in.IDType,
		IDPhoto:     in.IDPhoto.Ptr(),
		IDPhotoSet:  in.IDPhoto.Set,
	}
}

// mapSlice converts every element of in with fn. A nil input yields an
// empty, non-nil slice so lists encode as [].
func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
