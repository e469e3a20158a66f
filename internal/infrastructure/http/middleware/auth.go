package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mealforge/mealforge/internal/infrastructure/security"
	"github.com/mealforge/mealforge/pkg/errors"
)

type contextKey string

const (
	usernameKey       contextKey = "username"
	usernameHolderKey contextKey = "usernameHolder"
)

// usernameHolder lets middleware installed before the auth gates (the
// request logger) observe the identity the gates attach further down
// the chain.
type usernameHolder struct {
	name string
}

// UsernameFromContext returns the authenticated username, or "" for
// guest requests.
func UsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}

// WithUsername returns a context carrying the authenticated username.
// Exposed for handler tests.
func WithUsername(ctx context.Context, username string) context.Context {
	if holder, ok := ctx.Value(usernameHolderKey).(*usernameHolder); ok {
		holder.name = username
	}
	return context.WithValue(ctx, usernameKey, username)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Authenticate requires a valid bearer token. A missing token yields
// 401 and an invalid or expired one yields 403.
func Authenticate(tokens *security.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, errors.NewUnauthorizedError("Authentication required"))
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				writeAuthError(w, errors.NewInvalidTokenError())
				return
			}

			ctx := WithUsername(r.Context(), claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MaybeAuthenticate resolves the user when a token is present. Requests
// without a token proceed as guests, but a token that fails verification
// is still rejected with 403.
func MaybeAuthenticate(tokens *security.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				writeAuthError(w, errors.NewInvalidTokenError())
				return
			}

			ctx := WithUsername(r.Context(), claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	w.Write([]byte(`{"error":{"code":"` + string(appErr.Code) + `","message":"` + appErr.Message + `"}}`))
}
