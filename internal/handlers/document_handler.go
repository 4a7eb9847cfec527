package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
	"github.com/ternarybob/domus/internal/services/document"
	"github.com/ternarybob/domus/internal/services/summary"
)

// DocumentHandler produces the PDF representation of a listing, either as an
// attachment download or as an inline preview. Both delivery modes write the
// same materialized buffer.
type DocumentHandler struct {
	listings interfaces.ListingStorage
	summary  *summary.Service
	renderer *document.Renderer
	logger   arbor.ILogger
}

func NewDocumentHandler(listings interfaces.ListingStorage, summarySvc *summary.Service, renderer *document.Renderer, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		listings: listings,
		summary:  summarySvc,
		renderer: renderer,
		logger:   logger,
	}
}

type documentRequest struct {
	ListingID *int64 `json:"listingId"`
}

// GenerateDocumentHandler handles POST /api/document.
// 422 when listingId is missing or non-positive, 404 on unknown listing,
// otherwise 200 with a PDF attachment.
func (h *DocumentHandler) GenerateDocumentHandler(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := DecodeJSONBody(r, &req); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "invalid JSON body")
		return
	}
	if req.ListingID == nil || *req.ListingID <= 0 {
		WriteError(w, http.StatusUnprocessableEntity, "listingId is required and must be a positive number")
		return
	}

	h.serveFullDocument(w, r, *req.ListingID)
}

// DocumentByIDHandler handles GET /api/document/{id}.
// A path id that fails to parse as a positive number is 422.
func (h *DocumentHandler) DocumentByIDHandler(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := parseListingID(rawID)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.serveFullDocument(w, r, id)
}

// PreviewHandler handles GET /api/document/{id}/preview. The preview variant
// skips the narrative and ships inline. No PDF bytes are written on 404.
func (h *DocumentHandler) PreviewHandler(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := parseListingID(rawID)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	listing, ok := h.loadListing(w, r, id)
	if !ok {
		return
	}

	pdfBytes, err := h.renderer.RenderPreview(listing)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to render document")
		return
	}

	writePDF(w, pdfBytes, fmt.Sprintf("inline; filename=\"%s.pdf\"", document.SanitizeFilename(listing.Title, listing.ID)))
}

func (h *DocumentHandler) serveFullDocument(w http.ResponseWriter, r *http.Request, id int64) {
	listing, ok := h.loadListing(w, r, id)
	if !ok {
		return
	}

	narrative := h.summary.Summarize(r.Context(), listing)

	pdfBytes, err := h.renderer.RenderFull(listing, narrative)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to render document")
		return
	}

	writePDF(w, pdfBytes, fmt.Sprintf("attachment; filename=\"%s.pdf\"", document.SanitizeFilename(listing.Title, listing.ID)))
}

func (h *DocumentHandler) loadListing(w http.ResponseWriter, r *http.Request, id int64) (*models.Listing, bool) {
	listing, err := h.listings.GetListing(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "listing not found")
			return nil, false
		}
		h.logger.Error().Err(err).Int64("listing_id", id).Msg("Failed to load listing")
		WriteError(w, http.StatusInternalServerError, "failed to load listing")
		return nil, false
	}
	return listing, true
}

func parseListingID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("listing id must be a positive number")
	}
	return id, nil
}

func writePDF(w http.ResponseWriter, pdfBytes []byte, disposition string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
