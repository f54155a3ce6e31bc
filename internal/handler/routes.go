package handler

import (
	"net/http"

	"github.com/msomdec/waitlist-backend/internal/service"
)

// routeTable lists every registered route; RegisterRoutes and the debug
// listing both read from it so the two cannot drift apart.
var routeTable = []struct {
	Method string
	Path   string
}{
	{http.MethodPost, "/api/v1/contact/subscribe"},
	{http.MethodGet, "/api/health"},
	{http.MethodGet, "/debug/routes"},
	{http.MethodGet, "/"},
}

// RegisterRoutes sets up all HTTP routes on the given mux. Only the
// subscribe endpoint sits behind the rate limiter.
func RegisterRoutes(mux *http.ServeMux, contact *ContactHandler, health *HealthHandler, limiter *service.SlidingWindow) {
	mux.Handle("POST /api/v1/contact/subscribe", RateLimit(limiter, http.HandlerFunc(contact.HandleSubscribe)))
	mux.HandleFunc("GET /api/health", health.HandleHealth)
	mux.HandleFunc("GET /debug/routes", HandleDebugRoutes)
	mux.HandleFunc("GET /", health.HandleRoot)
}

// HandleDebugRoutes lists the registered routes.
// GET /debug/routes
func HandleDebugRoutes(w http.ResponseWriter, r *http.Request) {
	routes := make([]map[string]any, 0, len(routeTable))
	for _, rt := range routeTable {
		routes = append(routes, map[string]any{
			"path":    rt.Path,
			"methods": []string{rt.Method},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"routes": routes,
		"total":  len(routes),
	})
}
