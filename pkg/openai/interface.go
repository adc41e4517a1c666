package openai

import "context"

// IOpenAI is a client for any OpenAI-compatible /chat/completions endpoint.
// Implementations are safe for concurrent use.
type IOpenAI interface {
	// GenerateContent sends one chat completion request. Nothing is retried.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model used when a request does not name one
	Model() string
}

// New creates a new client with the given configuration
func New(cfg Config) (IOpenAI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newOpenAIImpl(cfg), nil
}
