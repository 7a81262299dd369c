package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/corrida-app/identity/pkg/jwtx"
	"github.com/corrida-app/identity/pkg/slogx"
)

// AuthnMiddleware verifies the bearer token and injects the subject and role
// claims into the request context. An invalid token of any kind collapses to
// 401 unauthenticated; the classified reason is logged, never surfaced.
func AuthnMiddleware(codec *jwtx.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			// Verify before trusting any decoded field.
			if v := codec.Verify(raw); !v.Valid {
				writeBearerError(w, "token verification failed")
				log.Warn("token rejected", "reason", string(v.Reason))
				return
			}

			subject, err := codec.Subject(raw)
			if err != nil || subject == "" {
				writeBearerError(w, "token verification failed")
				return
			}
			roles, _ := codec.Roles(raw)

			ctx = context.WithValue(ctx, CtxKeySubject, subject)
			ctx = context.WithValue(ctx, CtxKeyRoles, roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
