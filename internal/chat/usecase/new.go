package usecase

import (
	"content-review-tutor/internal/chat"
	"content-review-tutor/internal/extract"
	"content-review-tutor/internal/session"
	"content-review-tutor/internal/session/repository"
	"content-review-tutor/internal/upload"
	"content-review-tutor/pkg/filestore"
	"content-review-tutor/pkg/instruction"
	pkgLog "content-review-tutor/pkg/log"
)

// implUseCase is the private implementation of chat.UseCase.
type implUseCase struct {
	l           pkgLog.Logger
	gate        *upload.Gate
	store       filestore.IStore
	extractor   extract.UseCase
	sessions    repository.Repository
	llm         Completer
	instruction instruction.Source
	locks       *session.KeyedMutex
	cfg         Config
}

// New creates a new chat UseCase implementation.
func New(
	l pkgLog.Logger,
	gate *upload.Gate,
	store filestore.IStore,
	extractor extract.UseCase,
	sessions repository.Repository,
	llm Completer,
	src instruction.Source,
	cfg Config,
) chat.UseCase {
	return &implUseCase{
		l:           l,
		gate:        gate,
		store:       store,
		extractor:   extractor,
		sessions:    sessions,
		llm:         llm,
		instruction: src,
		locks:       &session.KeyedMutex{},
		cfg:         cfg,
	}
}
