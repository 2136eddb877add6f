package http

import (
	"net/http"

	"github.com/aussiebroadwan/persons/internal/persons/service"
	"github.com/aussiebroadwan/persons/pkg/httpx"
	"github.com/aussiebroadwan/persons/pkg/personsdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister creates a user account.
//
//	@Summary		Register
//	@Description	Creates a user with the user role and returns an access token for it.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		personsdk.RegisterRequest	true	"New account"
//	@Success		201		{object}	personsdk.AuthResponse		"Token and created user"
//	@Failure		400		{object}	personsdk.APIError			"Missing fields, invalid email, passwords differ, or email taken"
//	@Failure		500		{object}	personsdk.APIError			"Internal server error"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req personsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	res, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, personsdk.AuthResponse{Token: res.Token, User: toUser(res.User)})
}

// HandleLogin exchanges email and password for an access token.
//
//	@Summary		Login
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		personsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	personsdk.AuthResponse	"Token and user"
//	@Failure		400		{object}	personsdk.APIError		"Missing email or password"
//	@Failure		401		{object}	personsdk.APIError		"Invalid credentials"
//	@Failure		500		{object}	personsdk.APIError		"Internal server error"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req personsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, personsdk.AuthResponse{Token: res.Token, User: toUser(res.User)})
}

// HandleMe returns the authenticated user.
//
//	@Summary		Current user
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	personsdk.User		"The caller"
//	@Failure		401	{object}	personsdk.APIError	"Missing or invalid token"
//	@Router			/api/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	u, err := h.AuthService.Me(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleListUsers lists every account.
//
//	@Summary		List users
//	@Description	Admin only.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		personsdk.User		"All users, newest first"
//	@Failure		401	{object}	personsdk.APIError	"Missing or invalid token"
//	@Failure		403	{object}	personsdk.APIError	"Caller is not an admin"
//	@Router			/api/auth/users [get].
func (h *AuthHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.AuthService.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(users, toUser))
}

