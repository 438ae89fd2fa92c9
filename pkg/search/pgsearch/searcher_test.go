package pgsearch

import (
	"testing"

	"helpdesk-rag-be/pkg/search/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hybridTree(t *testing.T) query.Expr {
	t.Helper()
	owner, err := query.NewEquals("userId", "u-42")
	require.NoError(t, err)

	text := query.MultiFieldMatch{
		Fields:     []string{"question", "answer"},
		Text:       "return policy",
		TieBreaker: 0.3,
		Boost:      0.3,
	}
	vector := query.VectorSimilarity{
		Field:  "question_vector",
		Vector: []float32{1, 0, 0},
		Filter: query.And{Exprs: []query.Expr{owner}},
		Boost:  0.7,
	}
	return query.Or{Exprs: []query.Expr{
		query.And{Exprs: []query.Expr{owner, text}},
		vector,
	}}
}

func TestFlattenKeepsBothScoringClauses(t *testing.T) {
	p := &plan{
		equals: map[string]interface{}{},
		fuzzy:  map[string]string{},
	}
	require.NoError(t, flatten(hybridTree(t), p))

	require.NotNil(t, p.text, "hybrid plan keeps the text clause")
	require.NotNil(t, p.vector, "hybrid plan keeps the vector clause")
	assert.Equal(t, 0.3, p.text.Boost)
	assert.Equal(t, 0.7, p.vector.Boost)
	assert.Equal(t, "u-42", p.equals["userId"], "shared filters collected once")
}

func TestFlattenRejectsUnknownExpression(t *testing.T) {
	type unknown struct{ query.Expr }
	p := &plan{
		equals: map[string]interface{}{},
		fuzzy:  map[string]string{},
	}
	assert.Error(t, flatten(unknown{}, p))
}

func TestTrigramExprSingleField(t *testing.T) {
	expr, args := trigramExpr(&query.MultiFieldMatch{
		Fields: []string{"question"},
		Text:   "refund",
	})
	assert.Equal(t, "similarity(question, ?)", expr)
	assert.Equal(t, []interface{}{"refund"}, args)
}

func TestTrigramExprRanksAcrossFields(t *testing.T) {
	expr, args := trigramExpr(&query.MultiFieldMatch{
		Fields: []string{"question", "answer"},
		Text:   "return policy",
	})
	assert.Equal(t, "greatest(similarity(question, ?), similarity(answer, ?))", expr)
	assert.Equal(t, []interface{}{"return policy", "return policy"}, args)
}
