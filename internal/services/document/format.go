package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NotCommunicated is the placeholder rendered for absent numeric fields.
// Absence is always explicit, never a silent zero.
const NotCommunicated = "NC"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// FormatPrice renders a currency-less price with grouped thousands and the
// euro suffix, e.g. 350000 -> "350 000 €". A nil price renders as NC.
// Every call site (chat answer, fallback digest, PDF) must go through here.
func FormatPrice(price *float64) string {
	if price == nil {
		return NotCommunicated
	}
	return groupThousands(*price) + " €"
}

// FormatSurface renders a surface area with the m² suffix, e.g. 42 -> "42 m²".
// A nil surface renders as NC.
func FormatSurface(surface *float64) string {
	if surface == nil {
		return NotCommunicated
	}
	return trimNumber(*surface) + " m²"
}

// SanitizeFilename derives a safe filename stem from a listing title.
// Every run of characters outside [A-Za-z0-9_-] collapses to a single
// underscore; an empty result falls back to "bien-<id>". The function is
// idempotent: sanitizing an already-sanitized stem is a no-op.
func SanitizeFilename(title string, id int64) string {
	stem := unsafeFilenameChars.ReplaceAllString(title, "_")
	stem = strings.Trim(stem, "_")
	if stem == "" {
		return fmt.Sprintf("bien-%d", id)
	}
	return stem
}

// ExtractHighlights returns at most max non-empty fragments of a free-text
// description, split on sentence-ending punctuation and line breaks.
// Fragments are trimmed and never empty.
func ExtractHighlights(description string, max int) []string {
	if max <= 0 {
		return nil
	}

	fragments := strings.FieldsFunc(description, func(r rune) bool {
		switch r {
		case '.', '!', '?', '\n', '\r':
			return true
		}
		return false
	})

	highlights := make([]string, 0, max)
	for _, fragment := range fragments {
		trimmed := strings.TrimSpace(fragment)
		if trimmed == "" {
			continue
		}
		highlights = append(highlights, trimmed)
		if len(highlights) == max {
			break
		}
	}
	return highlights
}

// groupThousands formats a number with space-grouped thousands and a comma
// decimal separator (French convention), e.g. 1234567.5 -> "1 234 567,50".
func groupThousands(value float64) string {
	negative := value < 0
	if negative {
		value = -value
	}

	formatted := strconv.FormatFloat(value, 'f', -1, 64)
	intPart := formatted
	fracPart := ""
	if idx := strings.IndexByte(formatted, '.'); idx >= 0 {
		intPart = formatted[:idx]
		fracPart = formatted[idx+1:]
		if len(fracPart) == 1 {
			fracPart += "0"
		}
	}

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(' ')
		}
		grouped.WriteRune(digit)
	}

	result := grouped.String()
	if fracPart != "" {
		result += "," + fracPart
	}
	if negative {
		result = "-" + result
	}
	return result
}

// trimNumber formats a value without trailing zeros, comma as decimal mark.
func trimNumber(value float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(value, 'f', -1, 64), ".", ",")
}
