package assistant

import (
	"strings"

	"github.com/ternarybob/domus/internal/models"
	"github.com/ternarybob/domus/internal/services/document"
)

const (
	// textPlaceholder stands in for absent free-text fields in the digest.
	// Numeric fields go through the canonical formatters instead, so the NC
	// placeholder stays uniform across answers, digests and PDFs.
	textPlaceholder = "—"

	// OfferToHelpLine closes every fallback digest.
	OfferToHelpLine = "N'hésitez pas à me poser d'autres questions sur ce bien."

	// ViewingInvitation is the closing line shared by the provider persona
	// and the fallback digest.
	ViewingInvitation = "Souhaitez-vous organiser une visite ? Je me tiens à votre disposition pour convenir d'un rendez-vous."
)

// KeyFactLines returns the fixed-order labeled digest lines for a listing:
// title, city, surface, price, description.
func KeyFactLines(listing *models.Listing) []string {
	return []string{
		"Titre : " + orPlaceholder(listing.Title),
		"Ville : " + orPlaceholder(listing.City),
		"Surface : " + document.FormatSurface(listing.Surface),
		"Prix : " + document.FormatPrice(listing.Price),
		"Description : " + orPlaceholder(listing.Description),
	}
}

// Digest builds the deterministic answer used when the completion provider is
// unavailable: the labeled key facts followed by the fixed closing lines.
func Digest(listing *models.Listing) string {
	lines := append(KeyFactLines(listing), "", OfferToHelpLine, ViewingInvitation)
	return strings.Join(lines, "\n")
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return textPlaceholder
	}
	return value
}
