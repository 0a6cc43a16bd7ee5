package auth

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/segyhp/loan-backoffice/internal/domain"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"
	"github.com/segyhp/loan-backoffice/pkg/response"
)

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller attached by Authenticate.
func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

// Authenticate rejects requests without a valid bearer token.
func (m *Manager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		raw = strings.TrimSpace(raw)
		if !found || raw == "" {
			response.FromError(w, r, customError.WrapUnauthenticated("Token no proporcionado", nil))
			return
		}

		claims, err := m.Verify(raw)
		if err != nil {
			response.FromError(w, r, customError.WrapUnauthenticated("Token inválido o expirado", err))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), claims.Principal())))
	})
}

// Authorize admits only callers whose role is listed. It must run after
// Authenticate.
func Authorize(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				response.FromError(w, r, customError.WrapUnauthenticated("Token no proporcionado", nil))
				return
			}
			if !slices.Contains(roles, p.Role) {
				response.FromError(w, r, customError.WrapForbidden(p.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
