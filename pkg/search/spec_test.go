package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-rag-be/pkg/search/query"
)

func testVector(dims int) []float32 {
	v := make([]float32, dims)
	for i := range v {
		v[i] = 0.01
	}
	return v
}

func TestComposeRequiresAClause(t *testing.T) {
	c := NewComposer(4)
	_, err := c.Compose(HybridQuerySpec{})
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestComposeRejectsUnknownVectorField(t *testing.T) {
	c := NewComposer(4)
	_, err := c.Compose(HybridQuerySpec{
		Vector: &VectorClause{Field: "title_vector", Vector: testVector(4)},
	})
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestComposeRejectsDimensionMismatch(t *testing.T) {
	c := NewComposer(512)
	_, err := c.Compose(HybridQuerySpec{
		Vector: &VectorClause{Field: VectorFieldQuestion, Vector: testVector(4)},
	})
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestComposeVectorOnlyCarriesFilters(t *testing.T) {
	c := NewComposer(4)
	eq, err := query.NewEquals("userId", "u-42")
	require.NoError(t, err)

	composed, err := c.Compose(HybridQuerySpec{
		Filters: []query.Expr{eq},
		Vector:  &VectorClause{Field: VectorFieldAnswer, Vector: testVector(4), Boost: 0.7},
		Limit:   5,
	})
	require.NoError(t, err)

	vs, ok := composed.Root.(query.VectorSimilarity)
	require.True(t, ok, "root should be the similarity clause")
	assert.Equal(t, "answer_vector", vs.Field)
	assert.Equal(t, 0.7, vs.Boost)

	filter, ok := vs.Filter.(query.And)
	require.True(t, ok)
	assert.Len(t, filter.Exprs, 1)
	assert.Equal(t, 5, composed.Limit)
}

func TestComposeTextOnly(t *testing.T) {
	c := NewComposer(4)
	eq, err := query.NewEquals("userId", "u-42")
	require.NoError(t, err)

	composed, err := c.Compose(HybridQuerySpec{
		Filters: []query.Expr{eq},
		Text: &TextClause{
			Fields:     []string{"question", "answer"},
			Text:       "refund",
			TieBreaker: 0.3,
			Boost:      0.3,
		},
	})
	require.NoError(t, err)

	root, ok := composed.Root.(query.And)
	require.True(t, ok)
	require.Len(t, root.Exprs, 2)

	m, ok := root.Exprs[1].(query.MultiFieldMatch)
	require.True(t, ok)
	assert.Equal(t, 0.3, m.Boost)
}

func TestComposeHybridDisjunction(t *testing.T) {
	c := NewComposer(4)
	eq, err := query.NewEquals("userId", "u-42")
	require.NoError(t, err)

	composed, err := c.Compose(HybridQuerySpec{
		Filters: []query.Expr{eq},
		Text: &TextClause{
			Fields:     []string{"question", "answer"},
			Text:       "refund",
			TieBreaker: 0.3,
			Boost:      0.3,
		},
		Vector: &VectorClause{Field: VectorFieldQuestion, Vector: testVector(4), Boost: 0.7},
	})
	require.NoError(t, err)

	root, ok := composed.Root.(query.Or)
	require.True(t, ok, "hybrid root should be a disjunction")
	require.Len(t, root.Exprs, 2)

	// Text branch: filters conjoined with the match, so a text hit still
	// satisfies the hard filters.
	textBranch, ok := root.Exprs[0].(query.And)
	require.True(t, ok)
	require.Len(t, textBranch.Exprs, 2)

	// Vector branch scores over the same filter base, so a document that
	// never matches the text is still eligible through similarity alone.
	vectorBranch, ok := root.Exprs[1].(query.VectorSimilarity)
	require.True(t, ok)
	filter, ok := vectorBranch.Filter.(query.And)
	require.True(t, ok)
	assert.Len(t, filter.Exprs, 1)
}

func TestComposeDefaultProjectionExcludesVectors(t *testing.T) {
	c := NewComposer(4)

	composed, err := c.Compose(HybridQuerySpec{
		Vector: &VectorClause{Field: VectorFieldQuestion, Vector: testVector(4)},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"question_vector", "answer_vector"}, composed.Projection.Exclude)
	assert.Empty(t, composed.Projection.Include)
}

func TestComposeExplicitProjectionWins(t *testing.T) {
	c := NewComposer(4)

	composed, err := c.Compose(HybridQuerySpec{
		Vector:     &VectorClause{Field: VectorFieldQuestion, Vector: testVector(4)},
		Projection: Projection{Include: []string{"question", "answer"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"question", "answer"}, composed.Projection.Include)
	assert.Empty(t, composed.Projection.Exclude)
}
