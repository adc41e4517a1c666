package gemini

import "context"

// IGemini is a client for the generateContent endpoint.
// Implementations are safe for concurrent use.
type IGemini interface {
	// GenerateContent sends one request. A non-empty SystemInstruction is
	// sent as the system instruction, never as a content turn.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model used when a request does not name one
	Model() string
}

// New validates cfg and returns a client.
func New(cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGeminiImpl(cfg), nil
}
