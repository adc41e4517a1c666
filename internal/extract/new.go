package extract

import (
	"time"

	"content-review-tutor/internal/model"
	"content-review-tutor/pkg/filestore"
	pkgLog "content-review-tutor/pkg/log"
)

type implUseCase struct {
	l         pkgLog.Logger
	store     filestore.IStore
	image     TextExtractor
	pdf       TextExtractor
	timeout   time.Duration
	numbering string
}

// New creates the extraction dispatcher. image handles JPEG/PNG, pdf handles
// application/pdf.
func New(l pkgLog.Logger, store filestore.IStore, image, pdf TextExtractor, cfg Config) UseCase {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.LabelNumbering == "" {
		cfg.LabelNumbering = NumberingCrossFile
	}
	return &implUseCase{
		l:         l,
		store:     store,
		image:     image,
		pdf:       pdf,
		timeout:   cfg.Timeout,
		numbering: cfg.LabelNumbering,
	}
}

// kindFor maps a media type to its extractor and label kind.
func (uc *implUseCase) kindFor(mediaType string) (TextExtractor, model.DocumentKind, bool) {
	switch mediaType {
	case "image/jpeg", "image/png":
		return uc.image, model.DocumentKindImage, true
	case "application/pdf":
		return uc.pdf, model.DocumentKindSlide, true
	}
	return nil, "", false
}
