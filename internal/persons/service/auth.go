package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/persons/internal/persons/domain"
	"github.com/aussiebroadwan/persons/internal/persons/store"
	"github.com/aussiebroadwan/persons/pkg/cryptox"
	"github.com/aussiebroadwan/persons/pkg/idx"
	"github.com/aussiebroadwan/persons/pkg/jwtx"
	"github.com/aussiebroadwan/persons/pkg/slogx"
)

var ErrNoSigningKey = errors.New("service: no signing key available")

// TokenKeys is what AuthService needs from a key manager.
type TokenKeys interface {
	Signer() jwtx.Signer
}

type AuthService struct {
	Store    store.Store
	Keys     TokenKeys
	Verifier jwtx.Verifier

	Issuer   string
	Audience []string
	TokenTTL time.Duration

	// StrictIdentity re-reads the user on every verified token so deleted
	// users and role changes take effect before the token expires.
	StrictIdentity bool

	// Now is overridable in tests.
	Now func() time.Time
}

type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthResult is returned by every flow that logs a user in.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// Register creates a user with the user role and logs them in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	l := slogx.FromContext(ctx)

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = domain.NormalizeEmail(in.Email)

	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return AuthResult{}, domain.Validation(domain.MsgAllFieldsRequired)
	}
	if !domain.ValidEmail(in.Email) {
		return AuthResult{}, domain.Validation(domain.MsgInvalidEmail)
	}
	if in.Password != in.ConfirmPassword {
		return AuthResult{}, domain.Validation(domain.MsgPasswordMismatch)
	}

	u, err := createUser(ctx, s.Store.Users(), newUserInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
		Role:      domain.RoleUser,
	})
	if err != nil {
		return AuthResult{}, err
	}

	l.Info("user registered", slog.String("user_id", u.ID))
	return s.issue(u)
}

// Login checks email and password. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	l := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, domain.Validation(domain.MsgLoginFieldsRequired)
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		// Spend the same hashing effort as a real check.
		_, _ = cryptox.HashPassword(password)
		return AuthResult{}, domain.Unauthenticated(domain.MsgInvalidCredentials)
	}
	if err != nil {
		l.Error("failed to load user for login", slog.Any("error", err))
		return AuthResult{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) || errors.Is(err, cryptox.ErrUnsupportedHash) {
			l.Info("login failed", slog.String("user_id", u.ID))
			return AuthResult{}, domain.Unauthenticated(domain.MsgInvalidCredentials)
		}
		l.Error("failed to verify password", slog.Any("error", err))
		return AuthResult{}, err
	}

	if cryptox.NeedsRehash(u.PasswordHash) {
		s.upgradeHash(ctx, &u, password)
	}

	return s.issue(u)
}

// upgradeHash moves legacy or outdated hashes to the current argon2id
// parameters. Failure is logged and otherwise ignored; the old hash still works.
func (s *AuthService) upgradeHash(ctx context.Context, u *domain.User, password string) {
	l := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Warn("failed to rehash password", slog.Any("error", err))
		return
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		l.Warn("failed to store rehashed password", slog.Any("error", err))
		return
	}
	u.PasswordHash = hash
	l.Info("password hash upgraded", slog.String("user_id", u.ID))
}

// VerifyToken resolves a bearer token to the caller's identity.
func (s *AuthService) VerifyToken(ctx context.Context, raw string) (domain.Identity, error) {
	l := slogx.FromContext(ctx)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Identity{}, domain.Unauthenticated(domain.MsgNoToken)
	}

	claims, err := s.Verifier.Verify(raw)
	if err != nil {
		l.Debug("token rejected", slog.Any("error", err))
		return domain.Identity{}, domain.Unauthenticated(domain.MsgInvalidToken)
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil || claims.Subject == "" {
		l.Warn("token with unusable claims", slog.String("sub", claims.Subject), slog.String("role", claims.Role))
		return domain.Identity{}, domain.Unauthenticated(domain.MsgInvalidToken)
	}

	id := domain.Identity{UserID: claims.Subject, Role: role, Email: claims.Email}
	if !s.StrictIdentity {
		return id, nil
	}

	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, domain.Unauthenticated(domain.MsgInvalidToken)
	}
	if err != nil {
		l.Error("failed to load token subject", slog.Any("error", err))
		return domain.Identity{}, err
	}
	return domain.Identity{UserID: u.ID, Role: u.Role, Email: u.Email}, nil
}

// Me returns the user behind id.
func (s *AuthService) Me(ctx context.Context, id domain.Identity) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, domain.Unauthenticated(domain.MsgUserNotFound)
	}
	return u, err
}

// ListUsers lists every account. Callers are expected to be admins; the
// check lives in the router guard.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

func (s *AuthService) issue(u domain.User) (AuthResult, error) {
	signer := s.Keys.Signer()
	if signer == nil {
		return AuthResult{}, ErrNoSigningKey
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(u.ID, u.Role.String(), u.Email, ttl, s.Issuer, s.Audience, s.now())
	token, err := signer.Sign(claims)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: u}, nil
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type newUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
}

// createUser hashes the password and inserts the user. Email must already be
// normalised and validated.
func createUser(ctx context.Context, users store.Users, in newUserInput) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if _, err := users.GetUserByEmail(ctx, in.Email); err == nil {
		return domain.User{}, domain.Conflict(domain.MsgUserExists)
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, domain.Conflict(domain.MsgUserExists)
		}
		l.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}
	return u, nil
}
