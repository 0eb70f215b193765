package middleware

import (
	"net/http"
	"strings"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/auth"
)

type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// ErrorHandler writes err as the response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Authenticate rejects requests without a valid bearer token and stores the
// verified identity in the request context.
func Authenticate(verifier TokenVerifier, onError ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				onError(w, r, apperr.ErrMissingToken)
				return
			}

			id, err := verifier.Verify(token)
			if err != nil {
				onError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), id)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
