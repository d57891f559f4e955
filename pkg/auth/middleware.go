package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
	apphttp "github.com/chainsafe/ton-deeplink/pkg/app/http"
)

// Middleware rejects requests without a valid bearer token and stores the
// token subject in the request context.
func Middleware(v *JWTValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				apphttp.WriteError(w, logger, apperrors.UnAuthorizedError(nil, "missing bearer token"))
				return
			}
			claims, err := v.ValidateToken(raw)
			if err != nil {
				apphttp.WriteError(w, logger, apperrors.UnAuthorizedError(err, "invalid bearer token"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), claims.Subject)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
