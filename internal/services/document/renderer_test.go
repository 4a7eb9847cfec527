package document

import (
	"bytes"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/models"
)

func testListing() *models.Listing {
	return &models.Listing{
		ID:          1,
		Title:       "Loft A",
		City:        "Paris",
		Price:       floatPtr(350000),
		Surface:     floatPtr(42),
		Description: "Lumineux. Proche commerces. Refait à neuf. Calme absolu.",
		Links:       []string{"https://example.com/loft-a"},
		UpdatedAt:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func validatePDF(t *testing.T, pdfBytes []byte) {
	t.Helper()
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))

	err := api.Validate(bytes.NewReader(pdfBytes), model.NewDefaultConfiguration())
	assert.NoError(t, err, "generated PDF failed validation")
}

func TestRenderFull(t *testing.T) {
	renderer := NewRenderer(arbor.NewLogger())

	pdfBytes, err := renderer.RenderFull(testListing(), "Un loft rare au cœur de Paris.")
	require.NoError(t, err)
	validatePDF(t, pdfBytes)
}

func TestRenderFullOmitsNarrativeSection(t *testing.T) {
	renderer := NewRenderer(arbor.NewLogger())
	listing := testListing()

	withNarrative, err := renderer.RenderFull(listing, "Une présentation.")
	require.NoError(t, err)

	withoutNarrative, err := renderer.RenderFull(listing, "")
	require.NoError(t, err)

	blankNarrative, err := renderer.RenderFull(listing, "   \n\t")
	require.NoError(t, err)

	// Whitespace-only narrative renders exactly like no narrative at all.
	assert.Equal(t, withoutNarrative, blankNarrative)
	assert.NotEqual(t, withNarrative, withoutNarrative)
}

func TestRenderPreview(t *testing.T) {
	renderer := NewRenderer(arbor.NewLogger())

	pdfBytes, err := renderer.RenderPreview(testListing())
	require.NoError(t, err)
	validatePDF(t, pdfBytes)
}

func TestRenderIsDeterministic(t *testing.T) {
	renderer := NewRenderer(arbor.NewLogger())
	listing := testListing()

	first, err := renderer.RenderFull(listing, "Présentation du bien.")
	require.NoError(t, err)
	second, err := renderer.RenderFull(listing, "Présentation du bien.")
	require.NoError(t, err)
	assert.Equal(t, first, second, "repeated full renders must be byte-identical")

	previewFirst, err := renderer.RenderPreview(listing)
	require.NoError(t, err)
	previewSecond, err := renderer.RenderPreview(listing)
	require.NoError(t, err)
	assert.Equal(t, previewFirst, previewSecond, "repeated preview renders must be byte-identical")
}

func TestRenderHandlesAbsentFields(t *testing.T) {
	renderer := NewRenderer(arbor.NewLogger())

	// Every optional field absent: the document must still render with NC
	// placeholders instead of dropping lines or failing.
	listing := &models.Listing{ID: 99}

	full, err := renderer.RenderFull(listing, "")
	require.NoError(t, err)
	validatePDF(t, full)

	preview, err := renderer.RenderPreview(listing)
	require.NoError(t, err)
	validatePDF(t, preview)
}

func TestRenderMarkdownNarrative(t *testing.T) {
	renderer := NewRenderer(arbor.NewLogger())

	narrative := "## Un emplacement rare\n\nAu cœur du quartier historique.\n\n- Proche métro\n- Commerces au pied de l'immeuble\n\n---\n\nConclusion en un paragraphe."
	pdfBytes, err := renderer.RenderFull(testListing(), narrative)
	require.NoError(t, err)
	validatePDF(t, pdfBytes)
}
