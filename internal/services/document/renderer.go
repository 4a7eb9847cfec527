package document

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/models"
)

// Fixed French section titles and notices of the generated document.
const (
	genericTitle   = "Bien immobilier"
	keyFactsTitle  = "Caractéristiques principales"
	narrativeTitle = "Présentation"
	linksTitle     = "Liens utiles"
	excerptTitle   = "Points clés (aperçu)"
	footerNotice   = "Document généré automatiquement"
	previewNotice  = "La version complète inclut une présentation détaillée, les commodités, les photos et les liens."
)

const maxHighlights = 3

// Renderer produces the PDF representation of a listing. Both delivery modes
// (attachment download and inline preview) consume the same materialized byte
// buffer, so they cannot diverge in content for identical inputs.
type Renderer struct {
	logger arbor.ILogger
}

// NewRenderer creates a new document renderer
func NewRenderer(logger arbor.ILogger) *Renderer {
	return &Renderer{
		logger: logger,
	}
}

// RenderFull renders the complete listing document: title, key facts, the
// supplied narrative (omitted entirely when empty), external links and the
// footer notice.
func (r *Renderer) RenderFull(listing *models.Listing, narrative string) ([]byte, error) {
	pdf, tr := r.newDocument(listing)

	r.writeTitle(pdf, tr, listing)
	r.writeRule(pdf)
	r.writeKeyFacts(pdf, tr, listing)

	if strings.TrimSpace(narrative) != "" {
		r.writeSectionTitle(pdf, tr, narrativeTitle)
		renderNarrative(pdf, tr, narrative)
	}

	if listing.HasLinks() {
		r.writeSectionTitle(pdf, tr, linksTitle)
		pdf.SetFont("Arial", "", 10)
		for _, link := range listing.Links {
			if link == "" {
				continue
			}
			pdf.MultiCell(0, 5, tr("- "+link), "", "L", false)
		}
		pdf.Ln(3)
	}

	r.writeRule(pdf)
	r.writeCenteredNotice(pdf, tr, footerNotice)

	return r.output(pdf, listing, "full")
}

// RenderPreview renders the shorter preview variant: title, key facts, up to
// three description highlights and the fixed upgrade notice. No narrative.
func (r *Renderer) RenderPreview(listing *models.Listing) ([]byte, error) {
	pdf, tr := r.newDocument(listing)

	r.writeTitle(pdf, tr, listing)
	r.writeRule(pdf)
	r.writeKeyFacts(pdf, tr, listing)

	r.writeSectionTitle(pdf, tr, excerptTitle)
	pdf.SetFont("Arial", "", 10)
	highlights := ExtractHighlights(listing.Description, maxHighlights)
	if len(highlights) == 0 {
		pdf.MultiCell(0, 5, tr("Description non communiquée."), "", "L", false)
	}
	for _, highlight := range highlights {
		pdf.MultiCell(0, 5, tr("- "+highlight), "", "L", false)
	}
	pdf.Ln(3)

	r.writeRule(pdf)
	r.writeCenteredNotice(pdf, tr, previewNotice)

	return r.output(pdf, listing, "preview")
}

// newDocument creates the A4 page with the cp1252 translator needed for the
// French templates.
func (r *Renderer) newDocument(listing *models.Listing) (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)

	// Deterministic metadata: rendering the same listing twice must produce
	// identical bytes regardless of delivery mode.
	creation := listing.UpdatedAt
	if creation.IsZero() {
		creation = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	pdf.SetCreationDate(creation)
	pdf.SetModificationDate(creation)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(listingTitle(listing)), false)
	pdf.AddPage()
	return pdf, tr
}

func (r *Renderer) writeTitle(pdf *fpdf.Fpdf, tr func(string) string, listing *models.Listing) {
	pdf.SetFont("Arial", "BU", 16)
	pdf.CellFormat(0, 10, tr(listingTitle(listing)), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func (r *Renderer) writeRule(pdf *fpdf.Fpdf) {
	pdf.Ln(1)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(4)
}

func (r *Renderer) writeSectionTitle(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

// writeKeyFacts writes the key-characteristics section. City, price and
// surface always appear (through the canonical formatters); rooms, bedrooms,
// floor and exposure are conditional lines, omitted when absent.
func (r *Renderer) writeKeyFacts(pdf *fpdf.Fpdf, tr func(string) string, listing *models.Listing) {
	r.writeSectionTitle(pdf, tr, keyFactsTitle)
	pdf.SetFont("Arial", "", 10)

	city := listing.City
	if city == "" {
		city = NotCommunicated
	}

	lines := []string{
		"Ville : " + city,
		"Prix : " + FormatPrice(listing.Price),
		"Surface : " + FormatSurface(listing.Surface),
	}
	if listing.Rooms != nil {
		lines = append(lines, "Pièces : "+strconv.Itoa(*listing.Rooms))
	}
	if listing.Bedrooms != nil {
		lines = append(lines, "Chambres : "+strconv.Itoa(*listing.Bedrooms))
	}
	if listing.Floor != nil {
		lines = append(lines, "Étage : "+strconv.Itoa(*listing.Floor))
	}
	if listing.Exposure != "" {
		lines = append(lines, "Exposition : "+listing.Exposure)
	}

	for _, line := range lines {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func (r *Renderer) writeCenteredNotice(pdf *fpdf.Fpdf, tr func(string) string, notice string) {
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, tr(notice), "", "C", false)
}

func (r *Renderer) output(pdf *fpdf.Fpdf, listing *models.Listing, layout string) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		r.logger.Error().Err(err).Int64("listing_id", listing.ID).Msg("Failed to generate PDF output")
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}

	r.logger.Debug().
		Int64("listing_id", listing.ID).
		Str("layout", layout).
		Int("pdf_size", buf.Len()).
		Msg("PDF generated")

	return buf.Bytes(), nil
}

func listingTitle(listing *models.Listing) string {
	if strings.TrimSpace(listing.Title) == "" {
		return genericTitle
	}
	return listing.Title
}
