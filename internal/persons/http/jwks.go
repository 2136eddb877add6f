package http

import (
	"net/http"

	"github.com/aussiebroadwan/persons/pkg/httpx"
	"github.com/aussiebroadwan/persons/pkg/jwtx"
	"github.com/aussiebroadwan/persons/pkg/personsdk"
)

// JWKSHandler exposes the JSON Web Key Set for public key discovery.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify access tokens.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	personsdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, personsdk.JWKSResponse(keys.PublicJWKS()))
	}
}
