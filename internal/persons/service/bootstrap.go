package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/persons/internal/persons/domain"
	"github.com/aussiebroadwan/persons/internal/persons/store"
	"github.com/aussiebroadwan/persons/pkg/cryptox"
	"github.com/aussiebroadwan/persons/pkg/slogx"
)

const MsgAlreadyBootstrapped = "System already bootstrapped"

// BootstrapService creates the first admin account. It is usable exactly
// once per database and only when a bootstrap token is configured.
type BootstrapService struct {
	Store store.Store
	Auth  *AuthService
	Token string
}

type BootstrapInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Enabled reports whether a bootstrap token is configured.
func (s *BootstrapService) Enabled() bool { return s.Token != "" }

// Bootstrap checks token against the configured one and, if no admin exists
// yet, creates one and logs it in.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, in BootstrapInput) (AuthResult, error) {
	l := slogx.FromContext(ctx)

	if !s.Enabled() {
		return AuthResult{}, domain.NotFound("Not found")
	}
	if !cryptox.EqualTokens(token, s.Token) {
		l.Warn("bootstrap attempted with a bad token")
		return AuthResult{}, domain.Unauthenticated(domain.MsgInvalidToken)
	}

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = domain.NormalizeEmail(in.Email)
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return AuthResult{}, domain.Validation(domain.MsgAllFieldsRequired)
	}
	if !domain.ValidEmail(in.Email) {
		return AuthResult{}, domain.Validation(domain.MsgInvalidEmail)
	}

	var admin domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Users().CountUsersByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.Conflict(MsgAlreadyBootstrapped)
		}

		admin, err = createUser(ctx, tx.Users(), newUserInput{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			Password:  in.Password,
			Role:      domain.RoleAdmin,
		})
		return err
	})
	if err != nil {
		return AuthResult{}, err
	}

	l.Info("admin bootstrapped", slog.String("user_id", admin.ID))
	return s.Auth.issue(admin)
}
