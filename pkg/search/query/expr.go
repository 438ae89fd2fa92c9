package query

import (
	"fmt"
	"strings"
)

// Expr is a node in a search query expression tree. Leaf nodes match or
// score documents, And/Or combine sub-expressions. The tree is engine
// agnostic; a serializer lowers it into a concrete query language.
type Expr interface {
	isExpr()
}

// Equals matches documents whose field holds exactly the given value.
type Equals struct {
	Field string
	Value interface{}
}

// FuzzyMatch matches documents whose analyzed field is relevant to the
// given text, scored by the engine's default text relevance.
type FuzzyMatch struct {
	Field string
	Text  string
	Boost float64 // 0 means engine default
}

// MultiFieldMatch matches the text against several fields with best_fields
// semantics: the top-scoring field dominates and every other matching field
// contributes TieBreaker times its own score.
type MultiFieldMatch struct {
	Fields     []string
	Text       string
	TieBreaker float64
	Boost      float64
}

// VectorSimilarity scores documents by cosine similarity between the query
// vector and the named dense-vector field, biased by +1.0 so scores stay in
// [0, 2]. Filter restricts scoring to documents that already pass it; a nil
// Filter scores the whole collection.
type VectorSimilarity struct {
	Field  string
	Vector []float32
	Filter Expr
	Boost  float64
}

// And combines sub-expressions conjunctively (every one must be satisfied).
type And struct {
	Exprs []Expr
}

// Or combines sub-expressions disjunctively (at least one must be
// satisfied; each matching branch contributes to the score).
type Or struct {
	Exprs []Expr
}

func (Equals) isExpr()           {}
func (FuzzyMatch) isExpr()       {}
func (MultiFieldMatch) isExpr()  {}
func (VectorSimilarity) isExpr() {}
func (And) isExpr()              {}
func (Or) isExpr()               {}

// NewEquals builds an exact-match fragment.
func NewEquals(field string, value interface{}) (Equals, error) {
	if strings.TrimSpace(field) == "" {
		return Equals{}, fmt.Errorf("equals: %w", ErrBlankField)
	}
	return Equals{Field: field, Value: value}, nil
}

// NewFuzzyMatch builds a single-field analyzed text fragment.
func NewFuzzyMatch(field, text string) (FuzzyMatch, error) {
	if strings.TrimSpace(field) == "" {
		return FuzzyMatch{}, fmt.Errorf("fuzzy match: %w", ErrBlankField)
	}
	return FuzzyMatch{Field: field, Text: text}, nil
}

// NewMultiFieldMatch builds a best_fields fragment over several fields. The
// tie breaker must stay in [0, 1].
func NewMultiFieldMatch(fields []string, text string, tieBreaker float64) (MultiFieldMatch, error) {
	if len(fields) == 0 {
		return MultiFieldMatch{}, fmt.Errorf("multi field match: %w", ErrBlankField)
	}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return MultiFieldMatch{}, fmt.Errorf("multi field match: %w", ErrBlankField)
		}
	}
	if tieBreaker < 0 || tieBreaker > 1 {
		return MultiFieldMatch{}, fmt.Errorf("multi field match: tie breaker %v outside [0,1]", tieBreaker)
	}
	return MultiFieldMatch{Fields: fields, Text: text, TieBreaker: tieBreaker}, nil
}
