package personsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Me returns the logged-in user.
func (s *Session) Me(ctx context.Context) (*User, error) {
	var u User
	if err := s.do(ctx, http.MethodGet, "/api/auth/me", nil, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers lists every account. Admin only.
func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.do(ctx, http.MethodGet, "/api/auth/users", nil, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

// CreatePerson stores a new person owned by the session user.
func (s *Session) CreatePerson(ctx context.Context, in PersonInput) (*Person, error) {
	var out PersonResponse
	if err := s.do(ctx, http.MethodPost, "/api/persons", in, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Person, nil
}

// ListPersons returns the session user's persons, newest first.
func (s *Session) ListPersons(ctx context.Context) ([]Person, error) {
	var persons []Person
	if err := s.do(ctx, http.MethodGet, "/api/persons", nil, &persons, http.StatusOK); err != nil {
		return nil, err
	}
	return persons, nil
}

func (s *Session) GetPerson(ctx context.Context, id string) (*Person, error) {
	var p Person
	if err := s.do(ctx, http.MethodGet, "/api/persons/"+url.PathEscape(id), nil, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePerson sends only the fields set in in.
func (s *Session) UpdatePerson(ctx context.Context, id string, in PersonInput) (*Person, error) {
	var out PersonResponse
	if err := s.do(ctx, http.MethodPut, "/api/persons/"+url.PathEscape(id), in, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Person, nil
}

func (s *Session) DeletePerson(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/api/persons/"+url.PathEscape(id), nil, nil, http.StatusOK)
}

// ListAllPersons returns every person with its owner. Admin only.
func (s *Session) ListAllPersons(ctx context.Context) ([]PersonWithOwner, error) {
	var persons []PersonWithOwner
	if err := s.do(ctx, http.MethodGet, "/api/persons/admin/all", nil, &persons, http.StatusOK); err != nil {
		return nil, err
	}
	return persons, nil
}
