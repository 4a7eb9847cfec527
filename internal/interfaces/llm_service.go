package interfaces

import "context"

// ProviderType identifies the completion provider backing a service.
type ProviderType string

const (
	// ProviderGemini uses the Google Gemini API
	ProviderGemini ProviderType = "gemini"
	// ProviderClaude uses the Anthropic Claude API
	ProviderClaude ProviderType = "claude"
)

// CompletionService is the contract consumed by the assistant and summary
// services: system instructions plus user content in, completion text out.
//
// Implementations must enforce a hard timeout on the outbound call so callers
// can rely on the fallback path triggering within a fixed latency ceiling.
// An empty or whitespace-only completion is reported as an error, never as a
// successful empty result.
type CompletionService interface {
	Complete(ctx context.Context, system, user string, temperature float32) (string, error)
	GetProviderType() ProviderType
	Close() error
}
