package llm

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds provider calls when no llm.timeout is configured.
// The fallback path must trigger within a few seconds of a provider stall.
const DefaultTimeout = 8 * time.Second

// NewCompletionService creates the completion service selected by
// llm.default_provider. The returned service carries the hard call timeout
// from llm.timeout.
func NewCompletionService(cfg *common.Config, logger arbor.ILogger) (interfaces.CompletionService, error) {
	timeout := DefaultTimeout
	if cfg.LLM.Timeout != "" {
		parsed, err := time.ParseDuration(cfg.LLM.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid llm.timeout duration '%s': %w", cfg.LLM.Timeout, err)
		}
		timeout = parsed
	}

	switch cfg.LLM.DefaultProvider {
	case common.LLMProviderClaude:
		return NewClaudeService(&cfg.Claude, timeout, logger)
	case common.LLMProviderGemini, "":
		return NewGeminiService(&cfg.Gemini, timeout, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLM.DefaultProvider)
	}
}

// newLimiter builds a rate limiter from a duration string, falling back to
// the given default interval when the value is empty or unparseable.
func newLimiter(interval string, fallback time.Duration) *rate.Limiter {
	d := fallback
	if interval != "" {
		if parsed, err := time.ParseDuration(interval); err == nil && parsed > 0 {
			d = parsed
		}
	}
	return rate.NewLimiter(rate.Every(d), 1)
}
