package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/milkwise/mother-care-service/internal/adapters/respond"
)

// TokenVerifier checks a session token and returns the bound mother id.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

type contextKey string

const motherIDKey contextKey = "maeID"

// AuthMiddleware guards routes with the bearer session token. On success the
// mother id claim is placed in the request context; everything downstream
// trusts only that id, never client-supplied identifiers.
type AuthMiddleware struct {
	tokens TokenVerifier
	log    zerolog.Logger
}

func NewAuthMiddleware(tokens TokenVerifier, log zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, log: log}
}

func (m *AuthMiddleware) RequireMother(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respond.WriteError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		// Accept both "Bearer <token>" and a bare token; the original mobile
		// client sends the token without a scheme.
		token := authHeader
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
			if !strings.EqualFold(parts[0], "Bearer") {
				respond.WriteError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}
			token = parts[1]
		}

		motherID, err := m.tokens.Verify(token)
		if err != nil {
			m.log.Debug().Err(err).Msg("token rejected")
			respond.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), motherIDKey, motherID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MotherID extracts the authenticated mother id placed by RequireMother.
func MotherID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(motherIDKey).(int64)
	return id, ok
}
