package middleware

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mohitvuyala/portfolio/backend/pkg/utils"
)

// RequireOperator guards operator-only routes with a bearer token checked
// against a bcrypt hash. An empty hash leaves the routes open.
func RequireOperator(tokenHash string) func(http.Handler) http.Handler {
	hash := []byte(strings.TrimSpace(tokenHash))

	return func(next http.Handler) http.Handler {
		if len(hash) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := operatorToken(r)
			if token == "" || bcrypt.CompareHashAndPassword(hash, []byte(token)) != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="operator"`)
				utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// operatorToken reads the bearer token, falling back to ?token= for
// websocket upgrades where browsers cannot set headers.
func operatorToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if scheme, token, ok := strings.Cut(auth, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}
