package rest

import (
	"log/slog"
	"net/http"

	"github.com/storylab/backend/internal/config"
	"github.com/storylab/backend/internal/transport/middleware"
)

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Log       *slog.Logger
	Config    *config.Config
	Auth      *AuthHandler
	Users     *UserHandler
	Focos     *FocusHandler
	Metas     *MetaHandler
	Presence  *PresenceHandler
	Health    *HealthHandler
	WS        http.HandlerFunc
	TokenAuth middleware.Middleware
	RateLimit middleware.Middleware
}

// NewRouter assembles the HTTP mux. Public routes get the base middleware
// chain; everything else additionally requires a bearer token. The WebSocket
// endpoint authenticates itself (query-param token) and skips the REST chain
// apart from recovery.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	base := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(deps.Log),
		middleware.Recovery(deps.Log),
		middleware.CORS(deps.Config.CORS),
	}
	if deps.RateLimit != nil {
		base = append(base, deps.RateLimit)
	}

	public := middleware.Chain(base...)
	protected := middleware.Chain(append(base, deps.TokenAuth)...)

	handle := func(pattern string, mw middleware.Middleware, h http.HandlerFunc) {
		mux.Handle(pattern, mw(h))
	}

	// Browser preflights never match the method-specific patterns below, so
	// without this the mux would answer OPTIONS with its automatic 405 before
	// any middleware runs. Route all OPTIONS through the public chain and let
	// the CORS middleware answer; a non-CORS OPTIONS falls through to 204.
	handle("OPTIONS /", public, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health probes stay unthrottled and unlogged beyond the base chain.
	handle("GET /live", public, deps.Health.Live)
	handle("GET /ready", public, deps.Health.Ready)
	handle("GET /health", public, deps.Health.Health)

	handle("POST /auth/register", public, deps.Auth.Register)
	handle("POST /auth/login", public, deps.Auth.Login)
	handle("POST /auth/google", public, deps.Auth.LoginExternal)
	handle("GET /auth/me", protected, deps.Auth.Me)

	handle("GET /users", protected, deps.Users.List)
	handle("PUT /profile", protected, deps.Users.UpdateProfile)

	handle("GET /focos", protected, deps.Focos.List)
	handle("POST /focos", protected, deps.Focos.Create)
	handle("PUT /focos/{id}", protected, deps.Focos.Update)
	handle("POST /focos/{id}/rating", protected, deps.Focos.Rate)

	handle("GET /metas", protected, deps.Metas.List)
	handle("POST /metas", protected, deps.Metas.Create)
	handle("PUT /metas/{id}", protected, deps.Metas.Update)

	handle("GET /presence/online", protected, deps.Presence.Online)

	handle("GET /ws", middleware.Chain(middleware.Recovery(deps.Log)), deps.WS)

	return mux
}
