package ocr

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

const DefaultLanguage = "eng"

// Config holds OCR engine settings.
type Config struct {
	Language string
}

// Tesseract runs OCR over raster images.
// A fresh engine client is created per call, so it is safe for concurrent use.
type Tesseract struct {
	language string
}

// New creates a Tesseract OCR extractor.
func New(cfg Config) *Tesseract {
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	return &Tesseract{language: cfg.Language}
}

// Extract yields exactly one value: the whitespace-trimmed text recognized in
// the image.
func (t *Tesseract) Extract(ctx context.Context, data []byte) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if err := ctx.Err(); err != nil {
			yield("", err)
			return
		}

		text, err := t.recognize(data)
		if err != nil {
			yield("", err)
			return
		}
		yield(strings.TrimSpace(text), nil)
	}
}

func (t *Tesseract) recognize(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("ocr: set language %s: %w", t.language, err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("ocr: load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: recognize: %w", err)
	}
	return text, nil
}
