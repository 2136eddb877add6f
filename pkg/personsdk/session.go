package personsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is an authenticated connection to the API. It holds the bearer
// token and the user it was issued for. Nothing about it is global: callers
// create one with Client.Login or LoadSession and pass it around.
type Session struct {
	client *Client

	mu        sync.RWMutex
	token     string
	user      User
	expiresAt time.Time
}

// NewSession wraps an existing token. The expiry is read from the token's
// exp claim without verifying the signature; the server still checks it.
func NewSession(client *Client, token string, user User) *Session {
	return &Session{
		client:    client,
		token:     token,
		user:      user,
		expiresAt: tokenExpiry(token),
	}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// ExpiresAt is the zero time when the token carries no readable exp.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Expired reports whether the token's exp has passed.
func (s *Session) Expired() bool {
	exp := s.ExpiresAt()
	return !exp.IsZero() && !time.Now().Before(exp)
}

// Client returns the client this session sends requests through.
func (s *Session) Client() *Client { return s.client }

func (s *Session) do(ctx context.Context, method, path string, in, out any, expectedStatus int) error {
	if s.Expired() {
		return ErrSessionExpired
	}
	return s.client.do(ctx, method, path, s.Token(), nil, in, out, expectedStatus)
}

// Refresh reloads the user from /api/auth/me.
func (s *Session) Refresh(ctx context.Context) error {
	u, err := s.Me(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.user = *u
	s.mu.Unlock()
	return nil
}

func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// ============================================================================
// Persistence
// ============================================================================

// sessionFile is the on-disk form of a Session.
type sessionFile struct {
	BaseURL string `json:"baseUrl"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// DefaultSessionPath is where the CLI keeps its session,
// $XDG_CONFIG_HOME/persons/session.json or the OS equivalent.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "persons", "session.json"), nil
}

// Save writes the session to path with owner-only permissions.
func (s *Session) Save(path string) error {
	s.mu.RLock()
	data, err := json.MarshalIndent(sessionFile{
		BaseURL: s.client.BaseURL,
		Token:   s.token,
		User:    s.user,
	}, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("personsdk: encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("personsdk: create session dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("personsdk: write session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("personsdk: write session: %w", err)
	}
	return nil
}

// LoadSession reads a session saved with Save. If client is nil a new one
// is created for the saved base URL. A missing file gives ErrNotLoggedIn and
// an expired token gives ErrSessionExpired.
func LoadSession(path string, client *Client) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("personsdk: read session: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("personsdk: decode session: %w", err)
	}
	if f.Token == "" {
		return nil, ErrNotLoggedIn
	}

	if client == nil {
		client = NewClient(f.BaseURL)
	}
	s := NewSession(client, f.Token, f.User)
	if s.Expired() {
		return nil, ErrSessionExpired
	}
	return s, nil
}

// ClearSession removes a saved session. Clearing a missing file is not an
// error.
func ClearSession(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("personsdk: remove session: %w", err)
	}
	return nil
}

