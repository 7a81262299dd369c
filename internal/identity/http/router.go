// Package http wires the identity service's HTTP surface: authentication,
// role grants, profile management and health endpoints.
package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/corrida-app/identity/api/identity" // swagger docs registration
	"github.com/corrida-app/identity/internal/identity/domain"
	"github.com/corrida-app/identity/internal/identity/service"
	"github.com/corrida-app/identity/internal/identity/store"
	"github.com/corrida-app/identity/pkg/httpx"
	"github.com/corrida-app/identity/pkg/jwtx"
	"github.com/corrida-app/identity/pkg/slogx"
)

// Handler bundles the services the routes dispatch into.
type Handler struct {
	Auth  *service.AuthService
	Users *service.UserService
	Codec *jwtx.Codec
	Store store.Store
}

// NewRouter builds the full route table. Authentication and role gating are
// applied per route; request logging wraps everything.
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	authn := httpx.AuthnMiddleware(h.Codec)
	adminOnly := httpx.RequireAnyRole(string(domain.RoleAdmin))

	// Public.
	mux.Handle("POST /v1/auth/login", http.HandlerFunc(h.Login))
	mux.Handle("POST /v1/auth/register", http.HandlerFunc(h.RegisterPassenger))
	mux.Handle("POST /v1/auth/register/driver", http.HandlerFunc(h.RegisterDriver))
	mux.Handle("POST /v1/auth/register/influencer", http.HandlerFunc(h.RegisterInfluencer))

	// Authenticated.
	mux.Handle("POST /v1/auth/role/driver",
		httpx.Chain(http.HandlerFunc(h.AddRoleDriver), authn))
	mux.Handle("GET /v1/users/me",
		httpx.Chain(http.HandlerFunc(h.Me), authn))
	mux.Handle("POST /v1/users/update",
		httpx.Chain(http.HandlerFunc(h.UpdateUser), authn))
	mux.Handle("POST /v1/users/phone",
		httpx.Chain(http.HandlerFunc(h.AddPhoneNumber), authn))
	mux.Handle("PATCH /v1/users/status/active",
		httpx.Chain(http.HandlerFunc(h.Activate), authn))
	mux.Handle("PATCH /v1/users/status/blocked",
		httpx.Chain(http.HandlerFunc(h.Block), authn))

	// Admin only.
	mux.Handle("POST /v1/auth/register/admin",
		httpx.Chain(http.HandlerFunc(h.RegisterAdmin), authn, adminOnly))
	mux.Handle("POST /v1/auth/role/influencer/{userId}",
		httpx.Chain(http.HandlerFunc(h.AddRoleInfluencer), authn, adminOnly))
	mux.Handle("POST /v1/auth/role/admin/{cpf}",
		httpx.Chain(http.HandlerFunc(h.AddRoleAdmin), authn, adminOnly))
	mux.Handle("GET /v1/users",
		httpx.Chain(http.HandlerFunc(h.ListUsers), authn, adminOnly))

	// Operational.
	mux.Handle("GET /livez", http.HandlerFunc(h.Livez))
	mux.Handle("GET /readyz", http.HandlerFunc(h.Readyz))
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return httpx.Chain(mux, slogx.HTTPMiddleware(logger))
}
