package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
)

type APIHandler struct {
	listings interfaces.ListingStorage
	logger   arbor.ILogger
}

func NewAPIHandler(listings interfaces.ListingStorage, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		listings: listings,
		logger:   logger,
	}
}

// LivenessHandler answers the root path with a plain liveness line.
func (h *APIHandler) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFoundHandler(w, r)
		return
	}
	if !RequireMethod(w, r, "GET") {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Domus API up\n"))
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
	})
}

// HealthHandler probes the store with a minimal read. A reachable store means
// 200 {ok:true}; anything else is 500 {ok:false}.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	if err := h.listings.Ping(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Health probe failed")
		WriteJSON(w, http.StatusInternalServerError, map[string]bool{"ok": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
