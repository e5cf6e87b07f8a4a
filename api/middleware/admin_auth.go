package middleware

import (
	"net/http"
	"strings"

	"github.com/memohit/boostacart-backend/api/responses"
	"github.com/memohit/boostacart-backend/pkg/auth"
	"github.com/memohit/boostacart-backend/pkg/config"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
)

// SessionCookieName is the cookie the login endpoint sets.
const SessionCookieName = "admin_session"

// AdminAuth validates the operator session token from the cookie or an
// Authorization bearer header and binds the username into the context.
func AdminAuth(cfg config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := sessionToken(r)
			if token == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
				return
			}

			claims, err := auth.ParseAdminSession(cfg, token)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session"))
				return
			}

			ctx = WithAdminUser(ctx, claims.Username)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{"admin_user": claims.Username})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
