package handler

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/cors"
	"github.com/msomdec/waitlist-backend/internal/service"
)

// RateLimit is middleware enforcing a per-client-IP quota. Requests
// over the quota are rejected with 429 before the wrapped handler runs.
func RateLimit(limiter *service.SlidingWindow, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded: "+limiter.Describe())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CORS returns middleware allowing the given origins with credentials
// and all methods and headers.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
}

// clientIP resolves the client address for rate-limit keying: the first
// X-Forwarded-For hop when present, else the RemoteAddr host.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
