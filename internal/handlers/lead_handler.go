package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/services/leads"
)

// LeadHandler records buyer interest in a listing.
type LeadHandler struct {
	leads  *leads.Service
	logger arbor.ILogger
}

func NewLeadHandler(leadsSvc *leads.Service, logger arbor.ILogger) *LeadHandler {
	return &LeadHandler{
		leads:  leadsSvc,
		logger: logger,
	}
}

// CreateLeadHandler handles POST /api/lead.
// 422 when listingId or phone is missing (no store mutation attempted),
// 500 with the store error detail on insert failure, otherwise 200 with the
// created lead.
func (h *LeadHandler) CreateLeadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req leads.CreateRequest
	if err := DecodeJSONBody(r, &req); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "invalid JSON body")
		return
	}

	lead, err := h.leads.Create(r.Context(), req)
	if err != nil {
		var validationErr *leads.ValidationError
		if errors.As(err, &validationErr) {
			WriteError(w, http.StatusUnprocessableEntity, validationErr.Detail)
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":   true,
		"lead": lead,
	})
}
