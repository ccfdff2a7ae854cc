package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/severnmarket/go-backend/internal/usecase"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/logger"
)

type contextKey string

const identityKey contextKey = "identity"

// authenticate проверяет Bearer-токен во внешнем сервисе и кладёт личность
// участника в контекст запроса.
func authenticate(issuer usecase.TokenIssuer, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				WriteError(w, e.ErrUnauthorized)
				return
			}

			identity, err := issuer.Validate(r.Context(), token)
			if err != nil {
				logger.Debugf("token validation failed: %v", err)
				WriteError(w, e.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identityFromCtx достаёт личность, положенную authenticate.
func identityFromCtx(ctx context.Context) (*usecase.Identity, error) {
	identity, ok := ctx.Value(identityKey).(*usecase.Identity)
	if !ok || identity == nil {
		return nil, e.ErrUnauthorized
	}

	return identity, nil
}
