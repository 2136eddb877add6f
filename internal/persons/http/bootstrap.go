package http

import (
	"net/http"

	"github.com/aussiebroadwan/persons/internal/persons/service"
	"github.com/aussiebroadwan/persons/pkg/httpx"
	"github.com/aussiebroadwan/persons/pkg/personsdk"
	"github.com/aussiebroadwan/persons/pkg/slogx"
)

// BootstrapTokenHeader carries the pre-shared bootstrap token.
const BootstrapTokenHeader = "X-Bootstrap-Token"

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP creates the first admin account.
//
//	@Summary		Bootstrap the first admin
//	@Description	Creates an admin user. Only available when a bootstrap token is configured and no admin exists yet.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token"
//	@Param			request				body		personsdk.BootstrapRequest	true	"Admin account"
//	@Success		201					{object}	personsdk.AuthResponse		"Token and created admin"
//	@Failure		400					{object}	personsdk.APIError			"Invalid body, or an admin already exists"
//	@Failure		401					{object}	personsdk.APIError			"Missing or wrong bootstrap token"
//	@Failure		404					{object}	personsdk.APIError			"Bootstrap not enabled"
//	@Router			/api/auth/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.BootstrapService == nil || !h.BootstrapService.Enabled() {
		personsdk.ErrNotFound.WriteError(w)
		return
	}

	l := slogx.FromContext(r.Context())
	l.Info("bootstrap requested")

	token := r.Header.Get(BootstrapTokenHeader)
	if token == "" {
		personsdk.NewAPIError(http.StatusUnauthorized, personsdk.CodeUnauthorized,
			"Bootstrap token is required in "+BootstrapTokenHeader+" header").WriteError(w)
		return
	}

	var req personsdk.BootstrapRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	res, err := h.BootstrapService.Bootstrap(r.Context(), token, service.BootstrapInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, personsdk.AuthResponse{Token: res.Token, User: toUser(res.User)})
}
