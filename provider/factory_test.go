package provider

import "testing"

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "openai provider",
			config: Config{
				Type:   ProviderTypeOpenAI,
				Model:  "gpt-4-1106-preview",
				APIKey: "test-key",
			},
			expectError: false,
		},
		{
			name: "openai provider with custom base url",
			config: Config{
				Type:    ProviderTypeOpenAI,
				BaseURL: "https://proxy.example.com/v1",
				Model:   "gpt-4o-mini",
				APIKey:  "test-key",
			},
			expectError: false,
		},
		{
			name: "anthropic provider",
			config: Config{
				Type:   ProviderTypeAnthropic,
				Model:  "claude-sonnet-4-5-20250929",
				APIKey: "test-key",
			},
			expectError: false,
		},
		{
			name: "ollama provider with defaults",
			config: Config{
				Type: ProviderTypeOllama,
			},
			expectError: false,
		},
		{
			name: "ollama provider with custom host",
			config: Config{
				Type:    ProviderTypeOllama,
				BaseURL: "http://localhost:11434",
				Model:   "llama3.1",
			},
			expectError: false,
		},
		{
			name: "unknown provider type",
			config: Config{
				Type:  ProviderType("unknown"),
				Model: "test",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.expectError && provider == nil {
				t.Error("expected non-nil provider, got nil")
			}
			if tt.expectError && provider != nil {
				t.Error("expected nil provider, got non-nil")
			}
		})
	}
}

func TestMapProviderIDToType(t *testing.T) {
	tests := []struct {
		id   string
		want ProviderType
	}{
		{"openai", ProviderTypeOpenAI},
		{"anthropic", ProviderTypeAnthropic},
		{"ollama", ProviderTypeOllama},
		{"something-else", ProviderType("something-else")},
	}

	for _, tt := range tests {
		if got := MapProviderIDToType(tt.id); got != tt.want {
			t.Errorf("MapProviderIDToType(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
