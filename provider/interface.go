// Package provider defines the abstract interface for LLM providers.
//
// The orchestration pipeline talks to one configured provider through a
// narrow contract: a blocking completion call and a blocking JSON-mode
// completion call. Keeping the contract this small lets the pipeline run
// unchanged against OpenAI, Anthropic or a local Ollama server, and makes
// the whole model layer mockable in tests (see provider/testutil).
//
// JSON mode is best-effort by design: CompleteJSON constrains the model to
// emit a single JSON object where the API supports that natively (OpenAI
// response_format, Ollama format), and falls back to a system instruction
// where it does not (Anthropic). Callers must still decode defensively.
package provider

import "context"

// Provider is the model-call contract used by the orchestrator. Every
// call is one blocking round trip; no retries, no streaming.
type Provider interface {
	// Complete returns the model's free-text reply for a prompt.
	Complete(ctx context.Context, system, prompt string) (string, error)

	// CompleteJSON returns a reply constrained to a single JSON object.
	CompleteJSON(ctx context.Context, system, prompt string) (string, error)

	// GetModel returns the active model name.
	GetModel() string

	// SetModel changes the active model.
	SetModel(model string)

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOpenAI    ProviderType = "openai"
	ProviderTypeAnthropic ProviderType = "anthropic"
	ProviderTypeOllama    ProviderType = "ollama"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // For OpenAI/Anthropic (unused for Ollama)
}

// jsonSystemPrompt forces JSON output on providers without a native JSON
// response mode, and accompanies the native mode elsewhere.
const jsonSystemPrompt = "Always produce responses in JSON format"
