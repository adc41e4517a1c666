package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoProvidersConfigured indicates no providers are enabled
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrAllProvidersFailed wraps the last failure when fallback tried every provider
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrUpstreamUnavailable covers transport errors, timeouts, 5xx and 429
	ErrUpstreamUnavailable = errors.New("completion service unavailable")
)

// UpstreamRejectedError is any other non-2xx response, or a 2xx response
// without usable content (StatusCode 200).
type UpstreamRejectedError struct {
	Provider   string
	StatusCode int
	Detail     string
}

func (e *UpstreamRejectedError) Error() string {
	return fmt.Sprintf("completion rejected by %s (status %d): %s", e.Provider, e.StatusCode, e.Detail)
}

// ProviderError wraps provider-specific errors
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// classifyStatus maps a non-2xx status to its failure class.
func classifyStatus(provider string, status int, detail string) error {
	if status == http.StatusTooManyRequests || status >= 500 {
		return &ProviderError{
			Provider: provider,
			Err:      fmt.Errorf("%w: status %d: %s", ErrUpstreamUnavailable, status, detail),
		}
	}
	return &UpstreamRejectedError{Provider: provider, StatusCode: status, Detail: detail}
}

// unavailable marks err as ErrUpstreamUnavailable unless it already carries
// a failure class.
func unavailable(provider string, err error) error {
	var rejected *UpstreamRejectedError
	if errors.Is(err, ErrUpstreamUnavailable) || errors.As(err, &rejected) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("timed out: %w", err)
	}
	return &ProviderError{Provider: provider, Err: fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)}
}
