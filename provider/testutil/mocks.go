package testutil

import "context"

// MockProvider implements provider.Provider for testing
type MockProvider struct {
	// Configurable responses
	CompleteFunc     func(ctx context.Context, system, prompt string) (string, error)
	CompleteJSONFunc func(ctx context.Context, system, prompt string) (string, error)
	PingFunc         func(ctx context.Context) error

	// Recorded calls, oldest first
	CompleteCalls     []string
	CompleteJSONCalls []string

	currentModel string
}

// NewMockProvider creates a mock provider with default implementations
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{currentModel: modelName}
	mock.CompleteFunc = mock.defaultComplete
	mock.CompleteJSONFunc = mock.defaultCompleteJSON
	mock.PingFunc = func(ctx context.Context) error { return nil }
	return mock
}

// ScriptJSON queues fixed JSON replies returned by successive
// CompleteJSON calls; the last reply repeats once the script runs out.
func (m *MockProvider) ScriptJSON(replies ...string) {
	i := 0
	m.CompleteJSONFunc = func(ctx context.Context, system, prompt string) (string, error) {
		reply := replies[i]
		if i < len(replies)-1 {
			i++
		}
		return reply, nil
	}
}

func (m *MockProvider) defaultComplete(ctx context.Context, system, prompt string) (string, error) {
	return "Mock response", nil
}

func (m *MockProvider) defaultCompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	return "{}", nil
}

func (m *MockProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	m.CompleteCalls = append(m.CompleteCalls, prompt)
	return m.CompleteFunc(ctx, system, prompt)
}

func (m *MockProvider) CompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	m.CompleteJSONCalls = append(m.CompleteJSONCalls, prompt)
	return m.CompleteJSONFunc(ctx, system, prompt)
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

func (m *MockProvider) SetModel(model string) {
	m.currentModel = model
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}
