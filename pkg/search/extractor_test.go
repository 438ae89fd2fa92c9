package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	hits      []Document
	err       error
	lastIndex string
}

func (s *stubSearcher) Search(ctx context.Context, index string, q ComposedQuery) ([]Document, error) {
	s.lastIndex = index
	if s.err != nil {
		return nil, s.err
	}
	return s.hits, nil
}

func validSpec(dims int) HybridQuerySpec {
	return HybridQuerySpec{
		Vector: &VectorClause{Field: VectorFieldQuestion, Vector: testVector(dims)},
		Limit:  5,
	}
}

func TestRetrieveFiltersStrictlyAboveThreshold(t *testing.T) {
	searcher := &stubSearcher{hits: []Document{
		{Fields: map[string]interface{}{"question": "a"}, Score: 2.1},
		{Fields: map[string]interface{}{"question": "b"}, Score: 1.8}, // exactly at the bar
		{Fields: map[string]interface{}{"question": "c"}, Score: 1.5},
	}}
	ex := NewExtractor(NewComposer(4), searcher)

	docs, err := ex.Retrieve(context.Background(), "qa_vectors", validSpec(4), 1.8)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].Field("question"))
	assert.Equal(t, "qa_vectors", searcher.lastIndex)
}

func TestRetrieveEmptyResultIsNotAnError(t *testing.T) {
	ex := NewExtractor(NewComposer(4), &stubSearcher{})

	docs, err := ex.Retrieve(context.Background(), "qa_vectors", validSpec(4), 1.8)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestRetrievePropagatesSearchFailure(t *testing.T) {
	ex := NewExtractor(NewComposer(4), &stubSearcher{err: ErrSearchUnavailable})

	_, err := ex.Retrieve(context.Background(), "qa_vectors", validSpec(4), 1.8)
	assert.ErrorIs(t, err, ErrSearchUnavailable)
}

func TestRetrieveRejectsInvalidSpecBeforeSearching(t *testing.T) {
	searcher := &stubSearcher{}
	ex := NewExtractor(NewComposer(4), searcher)

	_, err := ex.Retrieve(context.Background(), "qa_vectors", HybridQuerySpec{}, 1.8)
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.Empty(t, searcher.lastIndex)
}

func TestDocumentFieldFallsBackToEmpty(t *testing.T) {
	doc := Document{Fields: map[string]interface{}{"question": "q", "count": 3}}
	assert.Equal(t, "q", doc.Field("question"))
	assert.Equal(t, "", doc.Field("missing"))
	assert.Equal(t, "", doc.Field("count"))
}
