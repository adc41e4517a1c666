package usecase

import (
	"context"

	"content-review-tutor/pkg/llmprovider"
)

// Completer is the completion client used for every turn.
type Completer interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Config holds the chat policy.
type Config struct {
	MaxMessages  int
	MaxDocuments int

	// SerializePerKey runs same-session requests one at a time.
	SerializePerKey bool

	// PersistOnUpstreamFailure commits the client delta and extracted
	// documents even when the completion call fails.
	PersistOnUpstreamFailure bool

	// RetainFiles keeps stored uploads after extraction.
	RetainFiles bool

	Temperature float64
	MaxTokens   int
}
