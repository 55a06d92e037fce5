package middleware

import "net/http"

// Readiness is implemented by dependencies that become usable some time after startup
type Readiness interface {
	Ready() bool
}

// NotReadyMessage is returned while the product store is still connecting
const NotReadyMessage = "Database not ready yet. Try again in a moment."

// RequireReady rejects every request with 503 until dep reports ready
func RequireReady(dep Readiness) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !dep.Ready() {
				w.Header().Set("Retry-After", "5")
				writeError(w, http.StatusServiceUnavailable, NotReadyMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
