package middleware

import (
	"net/http"
	"strings"
)

// CORS allows the configured origin plus dashboard preview deployments.
// The API is read-only, so only GET and OPTIONS are advertised.
func CORS(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqOrigin := r.Header.Get("Origin")
			allowed := origin

			if reqOrigin != "" && isAllowed(reqOrigin, origin) {
				allowed = reqOrigin
			}

			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isAllowed(reqOrigin, configured string) bool {
	if configured == "*" {
		return true
	}
	if reqOrigin == configured {
		return true
	}
	// Vercel preview deployments of the fees dashboard
	if strings.HasPrefix(reqOrigin, "https://spro-fees-dashboard-") &&
		strings.HasSuffix(reqOrigin, ".vercel.app") {
		return true
	}
	return false
}
