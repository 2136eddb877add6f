package personsdk

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func writeBody(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestPersonInputEncoding(t *testing.T) {
	tests := []struct {
		name string
		in   PersonInput
		want string
	}{
		{"absent photo", PersonInput{FirstName: String("Ana")}, `{"firstName":"Ana"}`},
		{"null photo", PersonInput{IDPhoto: Null[string]()}, `{"idPhoto":null}`},
		{"photo value", PersonInput{IDPhoto: Some("a.jpg")}, `{"idPhoto":"a.jpg"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.in)
			require.NoError(t, err)
			require.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestNullableDecoding(t *testing.T) {
	var in PersonInput
	require.NoError(t, json.Unmarshal([]byte(`{"idPhoto":null}`), &in))
	require.True(t, in.IDPhoto.Set)
	require.False(t, in.IDPhoto.Valid)
	require.Nil(t, in.IDPhoto.Ptr())

	in = PersonInput{}
	require.NoError(t, json.Unmarshal([]byte(`{"idPhoto":"b.png"}`), &in))
	require.Equal(t, "b.png", *in.IDPhoto.Ptr())

	in = PersonInput{}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &in))
	require.False(t, in.IDPhoto.Set)
}

func TestClientLoginAndErrors(t *testing.T) {
	token := testToken(t, time.Now().Add(time.Hour))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var req LoginRequest
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))

		if req.Password != "password123" {
			writeBody(t, w, http.StatusUnauthorized, APIError{Message: "Invalid credentials", Code: CodeUnauthorized})
			return
		}
		writeBody(t, w, http.StatusOK, AuthResponse{
			Token: token,
			User:  User{ID: "user-1", Email: req.Email, Role: "admin"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/")

	s, err := client.Login(t.Context(), "ana@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, token, s.Token())
	require.True(t, s.User().IsAdmin())
	require.False(t, s.Expired())
	require.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt(), 2*time.Second)

	_, err = client.Login(t.Context(), "ana@example.com", "nope")
	require.Error(t, err)
	require.True(t, IsStatus(err, http.StatusUnauthorized))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "Invalid credentials", apiErr.Message)
	require.Equal(t, CodeUnauthorized, apiErr.Code)
}

func TestErrorWithoutJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetLiveness(t.Context())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestSessionSendsBearerToken(t *testing.T) {
	token := testToken(t, time.Now().Add(time.Hour))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/persons":
			writeBody(t, w, http.StatusOK, []Person{{ID: "p1", FirstName: "Ana"}})
		case r.Method == http.MethodPut && r.URL.Path == "/api/persons/p1":
			body, _ := io.ReadAll(r.Body)
			require.JSONEq(t, `{"birthPlace":"Iași","idPhoto":null}`, string(body))
			writeBody(t, w, http.StatusOK, PersonResponse{Message: "Person updated successfully", Person: Person{ID: "p1", BirthPlace: "Iași"}})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/persons/p1":
			writeBody(t, w, http.StatusOK, MessageResponse{Message: "Person deleted successfully"})
		default:
			writeBody(t, w, http.StatusNotFound, APIError{Message: "Person not found", Code: CodeNotFound})
		}
	}))
	defer srv.Close()

	s := NewSession(NewClient(srv.URL), token, User{ID: "user-1"})

	persons, err := s.ListPersons(t.Context())
	require.NoError(t, err)
	require.Len(t, persons, 1)

	p, err := s.UpdatePerson(t.Context(), "p1", PersonInput{BirthPlace: String("Iași"), IDPhoto: Null[string]()})
	require.NoError(t, err)
	require.Equal(t, "Iași", p.BirthPlace)

	require.NoError(t, s.DeletePerson(t.Context(), "p1"))

	_, err = s.GetPerson(t.Context(), "missing")
	require.True(t, IsStatus(err, http.StatusNotFound))
}

func TestExpiredSessionSkipsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	s := NewSession(NewClient(srv.URL), testToken(t, time.Now().Add(-time.Minute)), User{})
	require.True(t, s.Expired())

	_, err := s.Me(t.Context())
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestSessionPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persons", "session.json")

	_, err := LoadSession(path, nil)
	require.ErrorIs(t, err, ErrNotLoggedIn)

	user := User{ID: "user-1", Email: "ana@example.com", Role: "user"}
	token := testToken(t, time.Now().Add(time.Hour))
	require.NoError(t, NewSession(NewClient("http://persons.test"), token, user).Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadSession(path, nil)
	require.NoError(t, err)
	require.Equal(t, token, loaded.Token())
	require.Equal(t, user, loaded.User())
	require.Equal(t, "http://persons.test", loaded.Client().BaseURL)

	other := NewClient("http://elsewhere.test")
	loaded, err = LoadSession(path, other)
	require.NoError(t, err)
	require.Same(t, other, loaded.Client())

	require.NoError(t, ClearSession(path))
	require.NoError(t, ClearSession(path))
	_, err = LoadSession(path, nil)
	require.ErrorIs(t, err, ErrNotLoggedIn)

	expired := testToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, NewSession(NewClient("http://persons.test"), expired, user).Save(path))
	_, err = LoadSession(path, nil)
	require.ErrorIs(t, err, ErrSessionExpired)
}
