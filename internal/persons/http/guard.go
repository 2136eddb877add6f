package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/persons/internal/persons/domain"
	"github.com/aussiebroadwan/persons/pkg/httpx"
	"github.com/aussiebroadwan/persons/pkg/slogx"
)

type ctxKeyIdentity struct{}

func withIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity{}, id)
}

// identityFrom returns the caller resolved by requireAuthenticated.
func identityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity{}).(domain.Identity)
	return id, ok && id.UserID != ""
}

// requireAuthenticated resolves the bearer token to an identity and stores
// it in the request context.
func (r *Router) requireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		token, _ := httpx.BearerToken(req)
		id, err := r.AuthService.VerifyToken(ctx, token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				httpx.SetBearerChallenge(w, domain.Message(err, ""))
			}
			writeError(w, req, err)
			return
		}

		ctx = withIdentity(ctx, id)
		ctx = slogx.With(ctx, slog.String("user_id", id.UserID))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// requireRole rejects callers whose role is not want. It must run after
// requireAuthenticated.
func requireRole(want domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id, ok := identityFrom(req.Context())
			if !ok {
				httpx.SetBearerChallenge(w, "")
				writeError(w, req, domain.Unauthenticated(domain.MsgNoToken))
				return
			}
			if !id.Role.Is(want) {
				slogx.FromContext(req.Context()).Warn("role check failed",
					slog.String("role", id.Role.String()),
					slog.String("required", want.String()),
				)
				writeError(w, req, domain.Forbidden(domain.MsgAdminRequired))
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
