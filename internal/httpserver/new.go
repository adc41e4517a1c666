package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	chatHTTP "content-review-tutor/internal/chat/delivery/http"
	"content-review-tutor/pkg/llmprovider"
	"content-review-tutor/pkg/log"
)

const defaultShutdownTimeout = 10 * time.Second

// SessionCounter reports how many sessions are live. Used by /ready.
type SessionCounter interface {
	Len(ctx context.Context) int
}

// ProviderLister reports the completion providers in priority order. Used by
// /ready.
type ProviderLister interface {
	Providers() []llmprovider.Provider
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	rateLimitPerMin int
	shutdownTimeout time.Duration

	// Chat domain
	chatHandler chatHTTP.Handler
	sessions    SessionCounter
	llm         ProviderLister
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	RateLimitPerMin int
	ShutdownTimeout time.Duration

	// Chat domain
	ChatHandler chatHTTP.Handler
	Sessions    SessionCounter
	LLM         ProviderLister
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		rateLimitPerMin: cfg.RateLimitPerMin,
		shutdownTimeout: cfg.ShutdownTimeout,
		chatHandler:     cfg.ChatHandler,
		sessions:        cfg.Sessions,
		llm:             cfg.LLM,
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = defaultShutdownTimeout
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.chatHandler == nil {
		return errors.New("chat handler is required")
	}
	return nil
}
