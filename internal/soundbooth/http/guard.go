package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/domain"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/service"
	"github.com/aussiebroadwan/soundbooth/pkg/httpx"
	"github.com/aussiebroadwan/soundbooth/pkg/slogx"
)

type userCtxKey struct{}

// RequireUser authenticates the access_token cookie (or Authorization
// header) and stores the resolved user in the request context.
func RequireUser(guard *service.AccessGuard) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := guard.Authenticate(r.Context(), httpx.SessionToken(r, httpx.AccessCookie))
			if err != nil {
				writeError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey{}, user)
			ctx = httpx.WithUserID(ctx, user.ID)
			ctx = slogx.WithUserID(ctx, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSupervisor must run after RequireUser.
func RequireSupervisor(guard *service.AccessGuard) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := userFromContext(r.Context())
			if !ok {
				writeError(w, r, service.Fail(service.ErrUnauthenticated, "token is missing"))
				return
			}
			if err := guard.RequireSupervisor(user); err != nil {
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func userFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(domain.User)
	return u, ok
}
