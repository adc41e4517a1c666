package extract

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"content-review-tutor/internal/model"
	"content-review-tutor/internal/upload"
)

// ExtractAll runs every source concurrently under the configured timeout.
// Units are only returned once all sources have succeeded.
func (uc *implUseCase) ExtractAll(ctx context.Context, sources []Source) ([]model.DocumentUnit, error) {
	if len(sources) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	kinds := make([]model.DocumentKind, len(sources))
	extractors := make([]TextExtractor, len(sources))
	for i, src := range sources {
		ex, kind, ok := uc.kindFor(upload.NormalizeMediaType(src.MediaType))
		if !ok {
			return nil, fmt.Errorf("%w: file %d: no extractor for %s", ErrExtractionFailed, i+1, src.MediaType)
		}
		kinds[i] = kind
		extractors[i] = ex
	}

	results := make([][]string, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			texts, err := uc.extractOne(gctx, extractors[i], src)
			if err != nil {
				return fmt.Errorf("file %d (%s): %w", i+1, src.Ref.Name, err)
			}
			results[i] = texts
			uc.l.Debugf(gctx, "extract.ExtractAll: %s file %d yielded %d unit(s)", kinds[i], i+1, len(texts))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.l.Errorf(ctx, "extract.ExtractAll: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	return uc.label(kinds, results), nil
}

// extractOne reads a stored file and drains its extractor. Engines that ignore
// ctx keep running in the background after a timeout, but the caller returns
// immediately.
func (uc *implUseCase) extractOne(ctx context.Context, ex TextExtractor, src Source) ([]string, error) {
	data, err := uc.store.Open(ctx, src.Ref)
	if err != nil {
		return nil, err
	}

	type result struct {
		texts []string
		err   error
	}
	done := make(chan result, 1)

	go func() {
		var texts []string
		for text, err := range ex.Extract(ctx, data) {
			if err != nil {
				done <- result{err: err}
				return
			}
			texts = append(texts, text)
		}
		done <- result{texts: texts}
	}()

	select {
	case r := <-done:
		return r.texts, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// label numbers units in upload order. Counters are kept per label kind; with
// per_file numbering they restart for every file.
func (uc *implUseCase) label(kinds []model.DocumentKind, results [][]string) []model.DocumentUnit {
	var units []model.DocumentUnit
	counters := make(map[model.DocumentKind]int)

	for i, texts := range results {
		if uc.numbering == NumberingPerFile {
			counters = make(map[model.DocumentKind]int)
		}
		for _, text := range texts {
			counters[kinds[i]]++
			units = append(units, model.NewDocumentUnit(kinds[i], counters[kinds[i]], text))
		}
	}
	return units
}
