package provider

import (
	"context"
	"fmt"

	"github.com/ollama/ollama/api"
	"urbangpt/ollama"
)

// OllamaProvider wraps the ollama.Client to implement the Provider
// interface for local models. JSON mode maps onto Ollama's format field.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a new Ollama provider instance.
//
// Parameters:
//   - baseURL: The Ollama server URL (e.g., "http://localhost:11434").
//     If empty, defaults to "http://localhost:11434".
//   - model: The model name to use (e.g., "llama3.1:latest").
//     If empty, defaults to "llama3.1:latest".
//
// Returns an error if the baseURL is invalid.
func NewOllamaProvider(baseURL, model string) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{client: client}, nil
}

// Complete implements Provider.Complete.
func (p *OllamaProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	return p.client.Chat(ctx, chatMessages(system, prompt), false)
}

// CompleteJSON implements Provider.CompleteJSON via Ollama's JSON format
// constraint, with the instruction system message kept as well.
func (p *OllamaProvider) CompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	messages := append([]api.Message{{Role: "system", Content: jsonSystemPrompt}}, chatMessages(system, prompt)...)
	return p.client.Chat(ctx, messages, true)
}

func chatMessages(system, prompt string) []api.Message {
	var messages []api.Message
	if system != "" {
		messages = append(messages, api.Message{Role: "system", Content: system})
	}
	return append(messages, api.Message{Role: "user", Content: prompt})
}

// GetModel implements Provider.GetModel.
func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}

// SetModel implements Provider.SetModel.
func (p *OllamaProvider) SetModel(model string) {
	p.client.SetModel(model)
}

// Ping implements Provider.Ping.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}
