package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Shashankvwali/VoltGo/internal/api/models"
	"github.com/Shashankvwali/VoltGo/internal/auth"
)

// sessionIDKey is the context key for the session ID.
type sessionIDKey struct{}

// TokenValidator resolves a bearer token to a session ID.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// Session requires a valid session bearer token and stores the session ID
// in the request context.
func Session(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, r, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if len(authHeader) < len(bearerPrefix) ||
				!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
				writeUnauthorized(w, r, "invalid authorization header format")
				return
			}

			token := strings.TrimSpace(authHeader[len(bearerPrefix):])
			if token == "" {
				writeUnauthorized(w, r, "missing bearer token")
				return
			}

			sessionID, err := tokens.Validate(token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrSessionTokenExpired):
					writeUnauthorized(w, r, "session token has expired")
				default:
					writeUnauthorized(w, r, "invalid session token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey{}, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeUnauthorized is local to avoid an import cycle with the response package.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="voltgo"`)
	problem := models.NewUnauthorized(GetRequestID(r.Context()), detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}

// GetSessionID retrieves the session ID from the context.
// Returns an empty string outside session routes.
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}
