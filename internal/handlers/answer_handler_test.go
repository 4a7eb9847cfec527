package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/services/assistant"
)

func newAnswerHandler(store *fakeListingStore, completion *fakeCompletion) *AnswerHandler {
	logger := arbor.NewLogger()
	var svc *assistant.Service
	if completion != nil {
		svc = assistant.NewService(completion, logger)
	} else {
		svc = assistant.NewService(nil, logger)
	}
	return NewAnswerHandler(store, svc, logger)
}

func postAnswer(t *testing.T, handler *AnswerHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/answer", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.AnswerQuestionHandler(rec, req)
	return rec
}

func TestAnswerHandlerValidation(t *testing.T) {
	handler := newAnswerHandler(newFakeListingStore(loftListing()), nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "Invalid JSON", body: "{not json"},
		{name: "Missing ListingID", body: `{"question": "Quelle surface ?"}`},
		{name: "Non Numeric ListingID", body: `{"listingId": "abc", "question": "Quelle surface ?"}`},
		{name: "Negative ListingID", body: `{"listingId": -2, "question": "Quelle surface ?"}`},
		{name: "Missing Question", body: `{"listingId": 1}`},
		{name: "Question Too Short", body: `{"listingId": 1, "question": " a "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postAnswer(t, handler, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}

func TestAnswerHandlerListingNotFound(t *testing.T) {
	handler := newAnswerHandler(newFakeListingStore(), nil)

	rec := postAnswer(t, handler, `{"listingId": 999, "question": "Quelle surface ?"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnswerHandlerStorageFailure(t *testing.T) {
	store := newFakeListingStore(loftListing())
	store.getErr = errors.New("store offline")
	handler := newAnswerHandler(store, nil)

	rec := postAnswer(t, handler, `{"listingId": 1, "question": "Quelle surface ?"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAnswerHandlerProviderAnswer(t *testing.T) {
	completion := &fakeCompletion{text: "Le loft fait 42 m². Une visite ?"}
	handler := newAnswerHandler(newFakeListingStore(loftListing()), completion)

	rec := postAnswer(t, handler, `{"listingId": 1, "question": "Quelle surface ?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Answer    string `json:"answer"`
		ListingID int64  `json:"listingId"`
		Source    string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "provider", resp.Source)
	assert.Equal(t, int64(1), resp.ListingID)
	assert.Equal(t, "Le loft fait 42 m². Une visite ?", resp.Answer)
}

func TestAnswerHandlerFallbackAnswer(t *testing.T) {
	// Provider forced unavailable: the answer must come from the digest and
	// carry the listing's key facts.
	completion := &fakeCompletion{err: errors.New("provider unavailable")}
	handler := newAnswerHandler(newFakeListingStore(loftListing()), completion)

	rec := postAnswer(t, handler, `{"listingId": 1, "question": "hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Answer    string `json:"answer"`
		ListingID int64  `json:"listingId"`
		Source    string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "fallback", resp.Source)
	assert.Contains(t, resp.Answer, "Loft A")
	assert.Contains(t, resp.Answer, "Paris")
	assert.Contains(t, resp.Answer, "42 m²")
	assert.Contains(t, resp.Answer, "350 000")
	assert.Contains(t, resp.Answer, "€")
}

func TestAnswerHandlerRejectsGet(t *testing.T) {
	handler := newAnswerHandler(newFakeListingStore(loftListing()), nil)

	req := httptest.NewRequest("GET", "/api/answer", nil)
	rec := httptest.NewRecorder()
	handler.AnswerQuestionHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
