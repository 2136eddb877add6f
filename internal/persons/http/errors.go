package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/persons/internal/persons/domain"
	"github.com/aussiebroadwan/persons/pkg/httpx"
	"github.com/aussiebroadwan/persons/pkg/personsdk"
	"github.com/aussiebroadwan/persons/pkg/slogx"
)

// writeError translates a service error into a status code and an error
// body. Unclassified errors are logged and hidden behind "Server error".
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusBadRequest, personsdk.CodeValidation
	case errors.Is(err, domain.ErrUnauthenticated):
		status, code = http.StatusUnauthorized, personsdk.CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status, code = http.StatusForbidden, personsdk.CodeForbidden
	case errors.Is(err, domain.ErrConflict):
		status, code = http.StatusBadRequest, personsdk.CodeConflict
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, personsdk.CodeNotFound
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		personsdk.ErrServerError.WriteError(w)
		return
	}

	personsdk.NewAPIError(status, code, domain.Message(err, http.StatusText(status))).WriteError(w)
}

// writeDecodeError reports a body that httpx.DecodeJSON rejected.
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, httpx.ErrBodyTooLarge) {
		personsdk.NewAPIError(http.StatusRequestEntityTooLarge, personsdk.CodeValidation, "Request body too large").WriteError(w)
		return
	}
	personsdk.ErrInvalidBody.WriteError(w)
}
