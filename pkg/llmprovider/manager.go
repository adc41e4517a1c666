package llmprovider

import (
	"context"
	"fmt"
	"time"

	"content-review-tutor/pkg/log"
)

// Manager sends each request to the first provider and, when fallback is
// enabled, to the next one on failure. Nothing is retried.
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	Timeout         time.Duration // bounds each provider call; 0 disables
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	if config == nil {
		config = &Config{}
	}
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// GenerateContent iterates through providers in priority order
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	var lastErr error
	tried := 0

	for _, provider := range m.providers {
		if err := ctx.Err(); err != nil {
			return nil, unavailable(provider.Name(), err)
		}

		tried++
		resp, err := m.generate(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = err

		if !m.config.FallbackEnabled {
			break
		}
	}

	if tried > 1 {
		return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
	}
	return nil, lastErr
}

// Providers returns the configured providers in priority order
func (m *Manager) Providers() []Provider {
	return m.providers
}

// generate runs a single provider call under the configured timeout
func (m *Manager) generate(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	if m.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.Timeout)
		defer cancel()
	}

	resp, err := provider.GenerateContent(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, unavailable(provider.Name(), ctx.Err())
		}
		return nil, err
	}
	return resp, nil
}

// logSuccess logs successful LLM generation with metrics
func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	usage := resp.Usage
	if usage == nil {
		usage = &Usage{}
	}
	m.logger.Infof(ctx, "llmprovider.Manager: %s/%s ok input_tokens=%d output_tokens=%d",
		provider.Name(), provider.Model(), usage.InputTokens, usage.OutputTokens)
}

// logFailure logs failed LLM generation attempts
func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warnf(ctx, "llmprovider.Manager: %s/%s failed: %v", provider.Name(), provider.Model(), err)
}
