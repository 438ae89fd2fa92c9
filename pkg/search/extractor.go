package search

import "context"

// Document is one retrieval hit: the projected stored fields plus the
// engine's relevance score. Discarded after the prompt is assembled.
type Document struct {
	Fields map[string]interface{}
	Score  float64
}

// Field returns the named field as a string, or "" if absent.
func (d Document) Field(name string) string {
	if v, ok := d.Fields[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Searcher executes a composed query against one collection and returns the
// raw hits in engine rank order. Implementations fail with
// ErrSearchUnavailable on transport or malformed-response errors.
type Searcher interface {
	Search(ctx context.Context, index string, q ComposedQuery) ([]Document, error)
}

// Extractor runs a HybridQuerySpec and keeps only hits whose score is
// strictly greater than the caller's threshold.
type Extractor struct {
	composer *Composer
	searcher Searcher
}

func NewExtractor(composer *Composer, searcher Searcher) *Extractor {
	return &Extractor{composer: composer, searcher: searcher}
}

// Retrieve composes, executes and filters. A zero-document result is a
// valid "no relevant context" outcome, not an error. A hit scoring exactly
// the threshold is discarded.
func (e *Extractor) Retrieve(ctx context.Context, index string, spec HybridQuerySpec, threshold float64) ([]Document, error) {
	composed, err := e.composer.Compose(spec)
	if err != nil {
		return nil, err
	}

	hits, err := e.searcher.Search(ctx, index, composed)
	if err != nil {
		return nil, err
	}

	relevant := make([]Document, 0, len(hits))
	for _, hit := range hits {
		if hit.Score > threshold {
			relevant = append(relevant, hit)
		}
	}
	return relevant, nil
}
