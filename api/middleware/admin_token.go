package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/soldhq/sales-ledger/api/responses"
	pkgerrors "github.com/soldhq/sales-ledger/pkg/errors"
	"github.com/soldhq/sales-ledger/pkg/logger"
)

// AdminToken guards the admin surface with a static bearer token.
// With no token configured the surface is disabled outright.
func AdminToken(token string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if token == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin surface disabled"))
				return
			}

			header := r.Header.Get("Authorization")
			presented, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token required"))
				return
			}
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid admin token"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
