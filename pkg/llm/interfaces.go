// Package llm generates short column descriptions through chat-completion
// endpoints (Azure OpenAI, OpenAI and Anthropic).
package llm

import (
	"context"
)

// TextGenerator produces one completion for one prompt. Implementations make
// exactly one request per call and never retry.
// Use this interface for dependency injection to enable mocking in tests.
type TextGenerator interface {
	// Generate returns the trimmed completion text. An empty completion is an error.
	Generate(ctx context.Context, prompt string) (string, error)

	// GetModel returns the configured model or deployment name.
	GetModel() string
}

// Ensure implementations satisfy TextGenerator at compile time.
var (
	_ TextGenerator = (*Client)(nil)
	_ TextGenerator = (*AnthropicClient)(nil)
	_ TextGenerator = (*UnavailableGenerator)(nil)
	_ TextGenerator = (*MockGenerator)(nil)
)
