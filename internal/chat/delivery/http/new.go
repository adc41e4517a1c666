package http

import (
	"github.com/gin-gonic/gin"

	"content-review-tutor/internal/chat"
	"content-review-tutor/pkg/log"
)

// Handler is the public interface for the chat HTTP delivery layer.
type Handler interface {
	Chat(c *gin.Context)
	History(c *gin.Context)
}

// Config holds delivery settings.
type Config struct {
	// MaxUploadBytes is the per-file limit. Reads stop one byte past it so
	// the upload gate can reject the file without buffering all of it.
	MaxUploadBytes int64

	// MaxFiles together with MaxUploadBytes caps the request body. 0 on
	// either leaves the body unbounded.
	MaxFiles int

	// ExposeUpstreamErrors surfaces the completion service's error detail
	// to clients.
	ExposeUpstreamErrors bool
}

type handler struct {
	l   log.Logger
	uc  chat.UseCase
	cfg Config
}

// New creates a new HTTP handler for the chat domain.
func New(l log.Logger, uc chat.UseCase, cfg Config) Handler {
	return &handler{
		l:   l,
		uc:  uc,
		cfg: cfg,
	}
}
