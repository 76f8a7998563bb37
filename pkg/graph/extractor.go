package graph

import (
	"context"

	errs "igdiff/pkg/errors"
)

// Extractor reads the identifiers currently rendered in the dialog, or in
// the document when no dialog is open
type Extractor struct {
	page Page
}

// NewExtractor creates an Extractor
func NewExtractor(page Page) *Extractor {
	return &Extractor{page: page}
}

// Extract returns the deduplicated identifiers in first-seen order
func (e *Extractor) Extract(ctx context.Context) ([]string, error) {
	var hrefs []string
	if err := e.page.Evaluate(ctx, linkHrefsJS, &hrefs); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeBrowser, "dialog", "failed to read profile links", err)
	}
	return ExtractIdentifiers(hrefs), nil
}
