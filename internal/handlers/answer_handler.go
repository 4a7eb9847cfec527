package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/services/assistant"
)

// AnswerHandler serves buyer questions about a listing.
type AnswerHandler struct {
	listings  interfaces.ListingStorage
	assistant *assistant.Service
	logger    arbor.ILogger
}

func NewAnswerHandler(listings interfaces.ListingStorage, assistantSvc *assistant.Service, logger arbor.ILogger) *AnswerHandler {
	return &AnswerHandler{
		listings:  listings,
		assistant: assistantSvc,
		logger:    logger,
	}
}

type answerRequest struct {
	ListingID *int64 `json:"listingId"`
	Question  string `json:"question"`
}

// AnswerQuestionHandler handles POST /api/answer.
// 422 on invalid listingId or a question shorter than 2 trimmed characters,
// 404 on unknown listing, otherwise 200 with the answer and its source tag.
func (h *AnswerHandler) AnswerQuestionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req answerRequest
	if err := DecodeJSONBody(r, &req); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "invalid JSON body")
		return
	}

	if req.ListingID == nil || *req.ListingID <= 0 {
		WriteError(w, http.StatusUnprocessableEntity, "listingId is required and must be a positive number")
		return
	}
	question := strings.TrimSpace(req.Question)
	if len([]rune(question)) < 2 {
		WriteError(w, http.StatusUnprocessableEntity, "question must be at least 2 characters")
		return
	}

	listing, err := h.listings.GetListing(r.Context(), *req.ListingID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "listing not found")
			return
		}
		h.logger.Error().Err(err).Int64("listing_id", *req.ListingID).Msg("Failed to load listing")
		WriteError(w, http.StatusInternalServerError, "failed to load listing")
		return
	}

	answer, source := h.assistant.Answer(r.Context(), listing, question)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"answer":    answer,
		"listingId": listing.ID,
		"source":    source,
	})
}
