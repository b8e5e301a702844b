package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Dan9191/kitten-service/internal/auth"
	"github.com/Dan9191/kitten-service/internal/models"
	"github.com/gorilla/mux"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthorizationHeader is the header carrying the bearer token
const AuthorizationHeader = "Authorization"

// AuthMiddleware rejects requests without a valid bearer token and
// stores the caller identity in the request context.
func AuthMiddleware(tokens *auth.TokenService) mux.MiddlewareFunc {
	return authenticate(tokens, true)
}

// OptionalAuthMiddleware lets requests without an Authorization header through
// unauthenticated. A header that is present must still carry a valid token.
func OptionalAuthMiddleware(tokens *auth.TokenService) mux.MiddlewareFunc {
	return authenticate(tokens, false)
}

func authenticate(tokens *auth.TokenService, required bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(AuthorizationHeader)
			if header == "" {
				if required {
					LoggerFromContext(r.Context()).Warn("Missing authorization header")
					Unauthorized(w)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			// "Bearer <token>": the token is the second field
			fields := strings.Fields(header)
			if len(fields) < 2 {
				LoggerFromContext(r.Context()).Warn("Malformed authorization header")
				Unauthorized(w)
				return
			}

			claims, err := tokens.Verify(fields[1])
			if err != nil {
				LoggerFromContext(r.Context()).WithError(err).Warn("Token rejected")
				Unauthorized(w)
				return
			}

			identity := &models.Identity{ID: claims.ID, Username: claims.Username}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the authenticated caller, or nil
func IdentityFromContext(ctx context.Context) *models.Identity {
	identity, ok := ctx.Value(identityKey).(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}

// Unauthorized writes the plain 401 response
func Unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(http.StatusText(http.StatusUnauthorized)))
}
