package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEquals(t *testing.T) {
	eq, err := NewEquals("status", "published")
	require.NoError(t, err)
	assert.Equal(t, "status", eq.Field)
	assert.Equal(t, "published", eq.Value)
}

func TestNewEqualsBlankField(t *testing.T) {
	tests := []struct {
		name  string
		field string
	}{
		{"empty", ""},
		{"whitespace", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEquals(tt.field, "x")
			assert.ErrorIs(t, err, ErrBlankField)
		})
	}
}

func TestNewFuzzyMatchBlankField(t *testing.T) {
	_, err := NewFuzzyMatch(" ", "refund policy")
	assert.ErrorIs(t, err, ErrBlankField)
}

func TestNewMultiFieldMatch(t *testing.T) {
	m, err := NewMultiFieldMatch([]string{"question", "answer"}, "how to reset password", 0.3)
	require.NoError(t, err)
	assert.Equal(t, []string{"question", "answer"}, m.Fields)
	assert.Equal(t, 0.3, m.TieBreaker)
}

func TestNewMultiFieldMatchValidation(t *testing.T) {
	_, err := NewMultiFieldMatch(nil, "text", 0.3)
	assert.ErrorIs(t, err, ErrBlankField)

	_, err = NewMultiFieldMatch([]string{"question", ""}, "text", 0.3)
	assert.ErrorIs(t, err, ErrBlankField)

	_, err = NewMultiFieldMatch([]string{"question"}, "text", 1.5)
	assert.Error(t, err)

	_, err = NewMultiFieldMatch([]string{"question"}, "text", -0.1)
	assert.Error(t, err)
}

func TestCombinatorsHoldArbitraryExprs(t *testing.T) {
	eq, err := NewEquals("category", "billing")
	require.NoError(t, err)

	root := Or{Exprs: []Expr{
		And{Exprs: []Expr{eq}},
		VectorSimilarity{Field: "question_vector", Vector: []float32{0.1}},
	}}
	assert.Len(t, root.Exprs, 2)
}
