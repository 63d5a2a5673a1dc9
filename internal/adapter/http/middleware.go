package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/kosthub/kosthub/internal/app"
	"github.com/kosthub/kosthub/internal/domain"
)

type ctxKey int

const actorKey ctxKey = iota

// ActorMiddleware resolves the bearer token to an Actor and stores it in the
// request context. Requests without a token pass through anonymously; the
// services reject anonymous actors where authentication is required. A token
// that is present but invalid fails the request outright.
func ActorMiddleware(accounts *app.AccountService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				unauthorized(w)
				return
			}

			actor, err := accounts.ActorFor(r.Context(), strings.TrimPrefix(header, prefix))
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"title":"Unauthorized","status":401,"detail":"invalid or expired token"}`))
}

// actorFrom returns the authenticated actor, or the zero Actor for anonymous
// requests.
func actorFrom(ctx context.Context) domain.Actor {
	actor, _ := ctx.Value(actorKey).(domain.Actor)
	return actor
}
