package usecase

import (
	"context"
	"fmt"

	"content-review-tutor/internal/chat"
	"content-review-tutor/internal/extract"
	"content-review-tutor/internal/model"
	"content-review-tutor/internal/upload"
	"content-review-tutor/pkg/llmprovider"
)

// validateRoles rejects any client message whose role the completion service
// would not accept.
func validateRoles(msgs []model.Message) error {
	for i, m := range msgs {
		if !m.Role.Valid() {
			return fmt.Errorf("%w: message %d has role %q", chat.ErrInvalidRole, i, m.Role)
		}
	}
	return nil
}

// extractFiles stores every upload and extracts its units. Stored files are
// removed afterwards unless RetainFiles is set.
func (uc *implUseCase) extractFiles(ctx context.Context, files []upload.UploadedFile) ([]model.DocumentUnit, error) {
	if len(files) == 0 {
		return nil, nil
	}

	sources := make([]extract.Source, 0, len(files))
	if !uc.cfg.RetainFiles {
		defer func() {
			for _, src := range sources {
				if err := uc.store.Remove(context.WithoutCancel(ctx), src.Ref); err != nil {
					uc.l.Warnf(ctx, "uc.Chat remove %s: %v", src.Ref.Name, err)
				}
			}
		}()
	}

	for i, f := range files {
		ref, err := uc.store.Save(ctx, f.OriginalName, f.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: file %d: %w", chat.ErrStorageFailed, i+1, err)
		}
		sources = append(sources, extract.Source{Ref: ref, MediaType: f.DeclaredMediaType})
	}

	return uc.extractor.ExtractAll(ctx, sources)
}

// buildRequest converts an assembled sequence into a completion request.
func (uc *implUseCase) buildRequest(seq []model.Message) *llmprovider.Request {
	msgs := make([]llmprovider.Message, len(seq))
	for i, m := range seq {
		msgs[i] = llmprovider.Message{Role: string(m.Role), Content: m.Content}
	}
	return &llmprovider.Request{
		Messages:    msgs,
		Temperature: uc.cfg.Temperature,
		MaxTokens:   uc.cfg.MaxTokens,
	}
}

// commit appends documents first, then messages. Each append trims.
func (uc *implUseCase) commit(ctx context.Context, key string, docs []model.DocumentUnit, msgs []model.Message) error {
	if len(docs) > 0 {
		if err := uc.sessions.AppendDocuments(ctx, key, docs...); err != nil {
			return fmt.Errorf("append documents: %w", err)
		}
	}
	if len(msgs) > 0 {
		if err := uc.sessions.AppendMessages(ctx, key, msgs...); err != nil {
			return fmt.Errorf("append messages: %w", err)
		}
	}
	return nil
}
