package pdf

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
)

// Extractor reads per-page text from PDF documents.
type Extractor struct{}

// New creates a PDF Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract yields the trimmed text of every page in physical order, starting
// at page 1. A page without text yields "" rather than being skipped, so the
// n-th yielded value is always page n. Iteration stops at the first error.
func (e *Extractor) Extract(ctx context.Context, data []byte) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		reader, err := ledongthuc.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			yield("", fmt.Errorf("pdf: open document: %w", err))
			return
		}

		numPages := reader.NumPage()
		for pageNum := 1; pageNum <= numPages; pageNum++ {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}

			text, err := pageText(reader.Page(pageNum))
			if err != nil {
				yield("", fmt.Errorf("pdf: page %d: %w", pageNum, err))
				return
			}
			if !yield(strings.TrimSpace(text), nil) {
				return
			}
		}
	}
}

func pageText(page ledongthuc.Page) (text string, err error) {
	// The parser panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()

	if page.V.IsNull() || page.V.Key("Contents").IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
