package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// CartTokenHeader carries the anonymous cart identity. Clients echo the
// header back on subsequent requests; the server mints one when absent.
const CartTokenHeader = "X-Cart-Token"

func CartToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(CartTokenHeader))
			if token == "" || uuid.Validate(token) != nil {
				token = uuid.NewString()
			}
			w.Header().Set(CartTokenHeader, token)
			next.ServeHTTP(w, r.WithContext(WithCartToken(r.Context(), token)))
		})
	}
}
