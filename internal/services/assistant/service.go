package assistant

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
)

// Source tags where an answer came from. Callers must be able to distinguish
// an AI-generated answer from the deterministic fallback.
type Source string

const (
	// SourceProvider marks answers generated by the completion provider.
	SourceProvider Source = "provider"
	// SourceFallback marks answers built from the deterministic digest.
	SourceFallback Source = "fallback"
)

// answerTemperature is the fixed sampling temperature for buyer questions.
const answerTemperature = 0.4

// systemPersona is the fixed instructional preamble: professional, warm,
// expert and reassuring, never invents missing facts, redirects off-topic
// questions back to the listing, always closes by offering a viewing.
const systemPersona = `Tu es un assistant immobilier professionnel, chaleureux, expert et rassurant.
Tu réponds aux questions des acheteurs au sujet du bien présenté dans la fiche fournie.
Tu ne dois jamais inventer une information absente de la fiche : si une donnée n'est pas communiquée, dis-le simplement.
Si la question s'éloigne du bien, ramène poliment la conversation vers le bien.
Termine toujours ta réponse en proposant d'organiser une visite.`

// Service answers free-text buyer questions about a listing. It tries the
// completion provider first and degrades to the deterministic digest on any
// failure: the API always answers, degraded but present.
type Service struct {
	completion interfaces.CompletionService
	logger     arbor.ILogger
}

// NewService creates a new assistant service. completion may be nil, in which
// case every answer takes the fallback path.
func NewService(completion interfaces.CompletionService, logger arbor.ILogger) *Service {
	return &Service{
		completion: completion,
		logger:     logger,
	}
}

// Answer produces a natural-language answer about the listing. It never
// returns an error: provider failure, timeout or blank output all resolve to
// the deterministic digest tagged SourceFallback.
func (s *Service) Answer(ctx context.Context, listing *models.Listing, question string) (string, Source) {
	if s.completion != nil {
		text, err := s.completion.Complete(ctx, systemPersona, buildUserContent(listing, question), answerTemperature)
		if err == nil {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return trimmed, SourceProvider
			}
		}

		s.logger.Warn().
			Err(err).
			Int64("listing_id", listing.ID).
			Msg("Completion provider degraded, answering from digest")
	}

	return Digest(listing), SourceFallback
}

// buildUserContent serializes the listing snapshot together with the question.
func buildUserContent(listing *models.Listing, question string) string {
	var sb strings.Builder
	sb.WriteString("Fiche du bien :\n")
	sb.WriteString(strings.Join(KeyFactLines(listing), "\n"))
	sb.WriteString("\n\nQuestion de l'acheteur :\n")
	sb.WriteString(question)
	return sb.String()
}
