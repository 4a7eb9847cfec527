package summary

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
	"github.com/ternarybob/domus/internal/services/assistant"
)

// summaryTemperature is the fixed sampling temperature for narratives.
const summaryTemperature = 0.5

// UnavailableNotice terminates the fallback narrative when the provider
// cannot produce a presentation.
const UnavailableNotice = "Présentation détaillée indisponible pour le moment."

const narrativeInstruction = `Tu es un rédacteur immobilier.
À partir de la fiche fournie, rédige une présentation commerciale réaliste et factuelle du bien, en 10 à 15 lignes.
Utilise des sous-titres courts (markdown) quand cela aide la lecture.
N'invente aucune information absente de la fiche.`

// Service produces the narrative presentation embedded in the full document.
// Same try/fallback policy as the assistant: it never raises to its caller.
type Service struct {
	completion interfaces.CompletionService
	logger     arbor.ILogger
}

// NewService creates a new summary service. completion may be nil.
func NewService(completion interfaces.CompletionService, logger arbor.ILogger) *Service {
	return &Service{
		completion: completion,
		logger:     logger,
	}
}

// Summarize returns a sales narrative for the listing. On provider failure it
// returns the deterministic placeholder (key facts plus the unavailable
// notice) instead of an error.
func (s *Service) Summarize(ctx context.Context, listing *models.Listing) string {
	if s.completion != nil {
		user := "Fiche du bien :\n" + strings.Join(assistant.KeyFactLines(listing), "\n")
		text, err := s.completion.Complete(ctx, narrativeInstruction, user, summaryTemperature)
		if err == nil {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return trimmed
			}
		}

		s.logger.Warn().
			Err(err).
			Int64("listing_id", listing.ID).
			Msg("Completion provider degraded, using placeholder narrative")
	}

	lines := append(assistant.KeyFactLines(listing), "", UnavailableNotice)
	return strings.Join(lines, "\n")
}
