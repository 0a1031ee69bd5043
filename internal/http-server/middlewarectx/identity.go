// Package middlewarectx contains the HTTP middleware of the service and the
// request-context accessors they feed.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	jwtlib "github.com/DEVYESH-1211/campus-events/internal/lib/jwt"
	"github.com/DEVYESH-1211/campus-events/internal/lib/sl"
)

// SessionCookie is the name of the cookie carrying the identity token.
const SessionCookie = "campus_session"

type ctxKey string

const usernameKey ctxKey = "username"

// TokenParser validates an identity token and returns its claims.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwtlib.CustomClaims, error)
}

// Identity resolves the session cookie into a username on the request
// context. Requests without a cookie, or with an invalid or expired token,
// pass through anonymously; attribution points fall back to "Guest".
func Identity(log *slog.Logger, parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Identity"

			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := parser.ParseToken(cookie.Value)
			if err != nil {
				log.Debug("discarding invalid session token",
					slog.String("op", op), sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Username returns the authenticated username from ctx, if any.
func Username(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(usernameKey).(string)
	return name, ok
}

// WithUsername returns a copy of ctx carrying name as the authenticated
// username. Used by tests and by anything constructing requests in-process.
func WithUsername(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, usernameKey, name)
}
