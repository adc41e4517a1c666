package httpserver

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	chatHTTP "content-review-tutor/internal/chat/delivery/http"
	"content-review-tutor/internal/middleware"
	"content-review-tutor/internal/model"
	"content-review-tutor/pkg/response"
)

func (srv HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.l, middleware.Config{RateLimitPerMin: srv.rateLimitPerMin})

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(mw); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(mw.RequestID(), gin.CustomRecovery(srv.recoverPanic))

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Running in production mode")
	} else {
		srv.gin.Use(mw.AccessLog())
		srv.l.Infof(ctx, "Running in %s mode, access log enabled", srv.environment)
	}
}

// recoverPanic answers a panicking request with a generic 500.
func (srv HTTPServer) recoverPanic(c *gin.Context, recovered any) {
	err := fmt.Errorf("panic: %v", recovered)
	srv.l.Errorf(c.Request.Context(), "httpserver.recoverPanic %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	response.InternalError(c, err)
	c.Abort()
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes(mw middleware.Middleware) error {
	ctx := context.Background()

	api := srv.gin.Group("/api/v1", mw.RateLimit())
	chatHTTP.RegisterRoutes(api.Group("/chat"), srv.chatHandler)

	if srv.rateLimitPerMin > 0 {
		srv.l.Infof(ctx, "Chat routes registered at /api/v1/chat (rate limit %d/min per client)", srv.rateLimitPerMin)
	} else {
		srv.l.Infof(ctx, "Chat routes registered at /api/v1/chat (rate limit disabled)")
	}

	return nil
}
