// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Analysis
		{Method: http.MethodPost, Path: "/api/v1/analyze", Handler: h.Analyze},
		{Method: http.MethodPost, Path: "/api/v1/simulate", Handler: h.Simulate},
		{Method: http.MethodPost, Path: "/api/v1/removals", Handler: h.Removals},

		// Gamification
		{Method: http.MethodGet, Path: "/api/v1/leaderboard", Handler: h.Leaderboard},
		{Method: http.MethodGet, Path: "/api/v1/users/{id}/score", Handler: h.GetUserScore},
		{Method: http.MethodPost, Path: "/api/v1/users/{id}/score", Handler: h.UpdateUserScore},
		{Method: http.MethodGet, Path: "/api/v1/achievements", Handler: h.Achievements},
		{Method: http.MethodPost, Path: "/api/v1/simulations", Handler: h.RecordSimulation},
		{Method: http.MethodGet, Path: "/api/v1/simulations", Handler: h.ListSimulations},
		{Method: http.MethodGet, Path: "/api/v1/export/{format}", Handler: h.Export},
	}
}

// IsWrite reports whether the route is subject to the stricter write
// rate limit.
func (r Route) IsWrite() bool {
	return r.Method == http.MethodPost
}
