package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/memohit/boostacart-backend/api/responses"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
	"github.com/memohit/boostacart-backend/pkg/redis"
)

// Idempotency rejects replays of POST requests that carry an already seen
// Idempotency-Key. Requests without the header pass through untouched.
func Idempotency(scope string, store redis.IdempotencyStore, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || ttl <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
			if key == "" || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			claimed, err := store.SetNX(ctx, store.IdempotencyKey(scope, key), "1", ttl)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "idempotency check"))
				return
			}
			if !claimed {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "duplicate request"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
