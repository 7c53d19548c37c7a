package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Unauthenticated system routes
	mux.HandleFunc("/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)

	// API routes - Ingestion (rate limited per client)
	mux.Handle("/api/v1/logs/batch", s.authenticated(s.rateLimited(http.HandlerFunc(s.app.LogHandler.IngestBatchHandler))))

	// API routes - Logs (GET list, POST ingest on the collection route)
	mux.Handle("/api/v1/logs", s.authenticated(http.HandlerFunc(s.handleLogsCollection)))
	mux.Handle("/api/v1/logs/", s.authenticated(http.HandlerFunc(s.app.LogHandler.DetailHandler))) // GET /{id}

	// API routes - Metrics
	mux.Handle("/api/v1/metrics/overview", s.authenticated(http.HandlerFunc(s.app.MetricsHandler.OverviewHandler)))
	mux.Handle("/api/v1/metrics/categories", s.authenticated(http.HandlerFunc(s.app.MetricsHandler.CategoriesHandler)))

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleLogsCollection dispatches /api/v1/logs by method
func (s *Server) handleLogsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.rateLimited(http.HandlerFunc(s.app.LogHandler.IngestHandler)).ServeHTTP(w, r)
	case http.MethodGet:
		s.app.LogHandler.ListHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
