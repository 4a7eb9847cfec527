package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Liveness and system routes
	mux.HandleFunc("/", s.app.APIHandler.LivenessHandler)
	mux.HandleFunc("/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// API routes - Answers
	mux.HandleFunc("/api/answer", s.app.AnswerHandler.AnswerQuestionHandler)

	// API routes - Leads
	mux.HandleFunc("/api/lead", s.app.LeadHandler.CreateLeadHandler)

	// API routes - Documents
	mux.HandleFunc("/api/document", s.handleDocumentRoute)
	mux.HandleFunc("/api/document/", s.handleDocumentRoutes) // Handles /api/document/{id} and /{id}/preview

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleDocumentRoute routes /api/document requests (generate by body)
func (s *Server) handleDocumentRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "POST":
		s.app.DocumentHandler.GenerateDocumentHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleDocumentRoutes routes /api/document/{id} and /api/document/{id}/preview
func (s *Server) handleDocumentRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pathSuffix := strings.TrimPrefix(r.URL.Path, "/api/document/")
	if pathSuffix == "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	// GET /api/document/{id}/preview
	if rawID, found := strings.CutSuffix(pathSuffix, "/preview"); found {
		s.app.DocumentHandler.PreviewHandler(w, r, rawID)
		return
	}

	// GET /api/document/{id}
	if strings.Contains(pathSuffix, "/") {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	s.app.DocumentHandler.DocumentByIDHandler(w, r, pathSuffix)
}
