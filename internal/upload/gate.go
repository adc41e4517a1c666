package upload

import (
	"fmt"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Gate validates uploads before they reach storage or extraction.
type Gate struct {
	maxSize       int64
	maxFiles      int
	allowed       map[string]struct{}
	verifyContent bool
}

// NewGate builds a Gate. Allowed media types are compared without parameters
// and case-insensitively.
func NewGate(cfg Config) *Gate {
	allowed := make(map[string]struct{}, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[NormalizeMediaType(t)] = struct{}{}
	}
	return &Gate{
		maxSize:       cfg.MaxSizeBytes,
		maxFiles:      cfg.MaxFiles,
		allowed:       allowed,
		verifyContent: cfg.VerifyContent,
	}
}

// MaxSize returns the configured per-file byte limit.
func (g *Gate) MaxSize() int64 {
	return g.maxSize
}

// MaxFiles returns the per-request file limit, 0 when unlimited.
func (g *Gate) MaxFiles() int {
	return g.maxFiles
}

// Validate checks every file in the batch and returns the first rejection.
// A batch is accepted or rejected as a whole.
func (g *Gate) Validate(files []UploadedFile) error {
	if g.maxFiles > 0 && len(files) > g.maxFiles {
		return &RejectedError{
			Index:  g.maxFiles,
			Name:   files[g.maxFiles].OriginalName,
			Reason: ErrTooManyFiles,
			Detail: fmt.Sprintf("%d files, limit is %d", len(files), g.maxFiles),
		}
	}
	for i, f := range files {
		if err := g.validateOne(f); err != nil {
			err.Index = i
			return err
		}
	}
	return nil
}

func (g *Gate) validateOne(f UploadedFile) *RejectedError {
	if f.Size() > g.maxSize {
		return &RejectedError{
			Name:   f.OriginalName,
			Reason: ErrOversizedFile,
			Detail: fmt.Sprintf("%d bytes, limit is %d", f.Size(), g.maxSize),
		}
	}

	declared := NormalizeMediaType(f.DeclaredMediaType)
	if _, ok := g.allowed[declared]; !ok {
		return &RejectedError{
			Name:   f.OriginalName,
			Reason: ErrUnsupportedMediaType,
			Detail: fmt.Sprintf("%q is not allowed", f.DeclaredMediaType),
		}
	}

	if g.verifyContent {
		detected := mimetype.Detect(f.Bytes)
		if !detected.Is(declared) {
			return &RejectedError{
				Name:   f.OriginalName,
				Reason: ErrUnsupportedMediaType,
				Detail: fmt.Sprintf("declared %s but content is %s", declared, detected.String()),
			}
		}
	}

	return nil
}

// NormalizeMediaType strips parameters and lowercases a media type.
func NormalizeMediaType(mediaType string) string {
	mediaType = strings.TrimSpace(mediaType)
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		return parsed
	}
	return strings.ToLower(mediaType)
}
