package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/persons/internal/persons/domain"
	"github.com/aussiebroadwan/persons/internal/persons/service"
	"github.com/aussiebroadwan/persons/internal/persons/store"
	"github.com/aussiebroadwan/persons/pkg/httpx"
	"github.com/aussiebroadwan/persons/pkg/jwtx"
	"github.com/aussiebroadwan/persons/pkg/slogx"

	_ "github.com/aussiebroadwan/persons/api/persons" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	PersonService    *service.PersonService
	BootstrapService *service.BootstrapService
}

func NewRouter(
	keys *jwtx.KeySet,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// The recoverer runs inside the logger so a panic is logged as a 500.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recoverer,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPersons()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Persons Registry API
//	@version		0.1.0
//	@description	Registry of personal identity documents. Users manage their own person records; admins can list every record.
//	@description
//	@description				Access tokens are JWTs verifiable with the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/persons
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	r.Mux.HandleFunc("POST /api/auth/register", h.HandleRegister)
	r.Mux.HandleFunc("POST /api/auth/login", h.HandleLogin)

	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			r.requireAuthenticated,
		),
	)

	r.Mux.Handle("GET /api/auth/users",
		httpx.Chain(http.HandlerFunc(h.HandleListUsers),
			r.requireAuthenticated,
			requireRole(domain.RoleAdmin),
		),
	)

	bootstrap := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /api/auth/bootstrap", bootstrap)
}

func (r *Router) registerPersons() {
	h := &PersonsHandler{PersonService: r.PersonService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, r.requireAuthenticated)
	}

	r.Mux.Handle("POST /api/persons", secured(h.HandleCreate))
	r.Mux.Handle("GET /api/persons", secured(h.HandleList))
	r.Mux.Handle("GET /api/persons/{id}", secured(h.HandleGet))
	r.Mux.Handle("PUT /api/persons/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/persons/{id}", secured(h.HandleDelete))

	r.Mux.Handle("GET /api/persons/admin/all",
		httpx.Chain(http.HandlerFunc(h.HandleListAll),
			r.requireAuthenticated,
			requireRole(domain.RoleAdmin),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
	r.Mux.Handle("GET /.well-known/jwks.json", JWKSHandler(r.keys))
}
