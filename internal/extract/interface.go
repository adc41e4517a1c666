package extract

import (
	"context"
	"iter"

	"content-review-tutor/internal/model"
)

// TextExtractor turns document bytes into a lazy, ordered sequence of texts,
// one per image or per PDF page.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) iter.Seq2[string, error]
}

//go:generate mockery --name UseCase
type UseCase interface {
	// ExtractAll extracts every source and returns labeled units in upload
	// order, then page order. Any failure aborts the whole batch.
	ExtractAll(ctx context.Context, sources []Source) ([]model.DocumentUnit, error)
}
