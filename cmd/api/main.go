package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"content-review-tutor/config"
	_ "content-review-tutor/docs" // Swagger docs
	chatHTTP "content-review-tutor/internal/chat/delivery/http"
	chatUsecase "content-review-tutor/internal/chat/usecase"
	"content-review-tutor/internal/extract"
	"content-review-tutor/internal/httpserver"
	"content-review-tutor/internal/session/repository"
	"content-review-tutor/internal/upload"
	"content-review-tutor/pkg/filestore"
	"content-review-tutor/pkg/instruction"
	"content-review-tutor/pkg/llmprovider"
	"content-review-tutor/pkg/log"
	"content-review-tutor/pkg/ocr"
	"content-review-tutor/pkg/pdf"
)

// @title       Content Review Tutor API
// @description Tutoring chat over uploaded slides and images, with OCR, PDF extraction and pluggable LLM providers.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	configPath := pflag.String("config", "", "path to config.yaml (default: search ./config, ., /etc/app/)")
	pflag.Parse()

	// 1. Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Content Review Tutor...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage and extraction
	store, err := filestore.NewOsStore(cfg.Upload.Dir)
	if err != nil {
		logger.Error(ctx, "Failed to initialize file store: ", err)
		return
	}
	logger.Infof(ctx, "Uploads stored under %s", cfg.Upload.Dir)

	extractor := extract.New(logger, store,
		ocr.New(ocr.Config{Language: cfg.OCR.Language}),
		pdf.New(),
		extract.Config{
			Timeout:        cfg.Extraction.Timeout,
			LabelNumbering: cfg.Extraction.LabelNumbering,
		},
	)

	gate := upload.NewGate(upload.Config{
		MaxSizeBytes:  cfg.Upload.MaxSizeBytes,
		MaxFiles:      cfg.Upload.MaxFiles,
		AllowedTypes:  cfg.Upload.AllowedTypes,
		VerifyContent: cfg.Upload.VerifyContent,
	})

	// 4. Sessions
	sessions := newSessionRepository(cfg.Session)
	logger.Infof(ctx, "Session store: %s (max %d messages, %d documents)",
		cfg.Session.Store, cfg.Session.MaxMessages, cfg.Session.MaxDocuments)

	// 5. System instruction
	src, stopWatching, err := newInstructionSource(ctx, logger, cfg.Prompt)
	if err != nil {
		logger.Error(ctx, "Failed to load system instruction: ", err)
		return
	}
	defer stopWatching()

	// 6. LLM providers
	providers, initErrs, err := llmprovider.InitializeProviders(&cfg.LLM)
	for _, e := range initErrs {
		logger.Warnf(ctx, "LLM provider skipped: %v", e)
	}
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	for _, p := range providers {
		logger.Infof(ctx, "LLM provider enabled: %s (%s)", p.Name(), p.Model())
	}
	llm := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		Timeout:         cfg.LLM.Timeout,
	}, logger)

	// 7. Chat domain
	chatUC := chatUsecase.New(logger, gate, store, extractor, sessions, llm, src, chatUsecase.Config{
		MaxMessages:              cfg.Session.MaxMessages,
		MaxDocuments:             cfg.Session.MaxDocuments,
		SerializePerKey:          cfg.Session.SerializePerKey,
		PersistOnUpstreamFailure: cfg.Session.PersistOnUpstreamFailure,
		RetainFiles:              cfg.Upload.RetainFiles,
		Temperature:              cfg.LLM.Temperature,
		MaxTokens:                cfg.LLM.MaxTokens,
	})
	chatHandler := chatHTTP.New(logger, chatUC, chatHTTP.Config{
		MaxUploadBytes:       gate.MaxSize(),
		MaxFiles:             gate.MaxFiles(),
		ExposeUpstreamErrors: cfg.LLM.ExposeUpstreamErrors,
	})

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		RateLimitPerMin: cfg.HTTPServer.RateLimitPerMin,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		ChatHandler:     chatHandler,
		Sessions:        sessions,
		LLM:             llm,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func newSessionRepository(cfg config.SessionConfig) repository.Repository {
	opt := repository.Options{
		MaxMessages:  cfg.MaxMessages,
		MaxDocuments: cfg.MaxDocuments,
	}
	if cfg.Store == config.SessionStoreLRU {
		return repository.NewLRU(opt, repository.LRUOptions{
			Size: cfg.LRUSize,
			TTL:  cfg.LRUTTL,
		})
	}
	return repository.NewMemory(opt)
}

// newInstructionSource returns the built-in instruction unless a file is
// configured, in which case the file is watched for edits.
func newInstructionSource(ctx context.Context, logger log.Logger, cfg config.PromptConfig) (instruction.Source, func(), error) {
	if cfg.SystemInstructionFile == "" {
		logger.Info(ctx, "Using built-in system instruction")
		return instruction.NewStatic(), func() {}, nil
	}

	src, err := instruction.NewFileSource(logger, cfg.SystemInstructionFile)
	if err != nil {
		return nil, nil, err
	}
	if err := src.StartWatching(); err != nil {
		logger.Warnf(ctx, "System instruction hot reload disabled: %v", err)
		return src, func() {}, nil
	}
	logger.Infof(ctx, "System instruction loaded from %s (hot reload on)", cfg.SystemInstructionFile)
	return src, src.StopWatching, nil
}
