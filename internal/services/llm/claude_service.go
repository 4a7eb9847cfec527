package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
	"golang.org/x/time/rate"
)

// ClaudeService implements the CompletionService interface using the
// Anthropic Claude API.
type ClaudeService struct {
	config  *common.ClaudeConfig
	logger  arbor.ILogger
	client  anthropic.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// Compile-time assertion
var _ interfaces.CompletionService = (*ClaudeService)(nil)

// NewClaudeService creates a new Claude completion service.
// The timeout is the hard per-call ceiling; every request is bounded by it so
// callers can rely on their fallback path triggering under provider slowness.
func NewClaudeService(config *common.ClaudeConfig, timeout time.Duration, logger arbor.ILogger) (*ClaudeService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required for Claude service (set ANTHROPIC_API_KEY or claude.api_key in config)")
	}

	if config.Model == "" {
		config.Model = "claude-haiku-3-5-20241022"
	}

	client := anthropic.NewClient(
		option.WithAPIKey(config.APIKey),
	)

	service := &ClaudeService{
		config:  config,
		logger:  logger,
		client:  client,
		limiter: newLimiter(config.RateLimit, time.Second),
		timeout: timeout,
	}

	logger.Debug().
		Str("model", config.Model).
		Dur("timeout", timeout).
		Msg("Claude completion service initialized")

	return service, nil
}

// Complete generates a single completion from system instructions and user
// content at the given sampling temperature.
func (s *ClaudeService) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	if strings.TrimSpace(user) == "" {
		return "", fmt.Errorf("user content cannot be empty for completion")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait failed: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	maxTokens := s.config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.config.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}

	if temperature > 0 {
		params.Temperature = anthropic.Float(float64(temperature))
	}

	if system != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}

	startTime := time.Now()
	resp, err := s.client.Messages.New(timeoutCtx, params)
	if err != nil {
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	result := strings.TrimSpace(text.String())
	if result == "" {
		return "", fmt.Errorf("empty response from Claude API")
	}

	s.logger.Debug().
		Int("response_length", len(result)).
		Dur("duration", time.Since(startTime)).
		Msg("Claude completion succeeded")

	return result, nil
}

// GetProviderType returns the provider type for this service
func (s *ClaudeService) GetProviderType() interfaces.ProviderType {
	return interfaces.ProviderClaude
}

// Close releases resources and performs cleanup operations
func (s *ClaudeService) Close() error {
	// Claude client doesn't require explicit cleanup
	return nil
}
