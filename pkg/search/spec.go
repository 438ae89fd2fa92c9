package search

import (
	"fmt"

	"helpdesk-rag-be/pkg/search/query"
)

// VectorField selects which dense-vector field a similarity clause targets.
type VectorField string

const (
	VectorFieldQuestion VectorField = "question_vector"
	VectorFieldAnswer   VectorField = "answer_vector"
)

// Valid reports whether the field is one of the two indexed vector fields.
func (f VectorField) Valid() bool {
	return f == VectorFieldQuestion || f == VectorFieldAnswer
}

// Projection controls which stored fields come back with each hit. When
// Include is non-empty it takes precedence over Exclude.
type Projection struct {
	Include []string
	Exclude []string
}

// TextClause is the lexical branch of a hybrid query: a best_fields match
// over the listed fields.
type TextClause struct {
	Fields     []string
	Text       string
	TieBreaker float64
	Boost      float64
}

// VectorClause is the similarity branch of a hybrid query.
type VectorClause struct {
	Field  VectorField
	Vector []float32
	Boost  float64
}

// HybridQuerySpec describes one retrieval request: hard filters that every
// result must satisfy, plus up to two soft scoring branches. At least one
// of Text/Vector must be present.
type HybridQuerySpec struct {
	Filters    []query.Expr
	Text       *TextClause
	Vector     *VectorClause
	Limit      int
	Projection Projection
}

// ComposedQuery is the composer's output: a query expression tree plus the
// request-level wrapping (size, projection) a serializer needs.
type ComposedQuery struct {
	Root       query.Expr
	Limit      int
	Projection Projection
}

// Composer turns a HybridQuerySpec into a single query expression tree.
// There is exactly one composer in the system; every retrieval endpoint
// goes through it.
type Composer struct {
	dims int
}

// NewComposer creates a composer expecting vectors of the given
// dimensionality (the embedding model's output size).
func NewComposer(dims int) *Composer {
	return &Composer{dims: dims}
}

// Compose validates the spec and builds the expression tree.
//
// Filters always combine conjunctively. A vector clause is scored with
// cosine similarity + 1.0 over the documents passing the filters. When both
// branches are present they combine disjunctively inside the filter
// conjunction, so a document passing the filters is ranked by whichever
// soft signal it triggers; it is never required to match the text branch.
func (c *Composer) Compose(spec HybridQuerySpec) (ComposedQuery, error) {
	if spec.Text == nil && spec.Vector == nil {
		return ComposedQuery{}, fmt.Errorf("%w: neither text nor vector clause present", ErrInvalidSpec)
	}

	var vector *query.VectorSimilarity
	if spec.Vector != nil {
		if !spec.Vector.Field.Valid() {
			return ComposedQuery{}, fmt.Errorf("%w: vector field %q is not question_vector or answer_vector", ErrInvalidSpec, spec.Vector.Field)
		}
		if len(spec.Vector.Vector) != c.dims {
			return ComposedQuery{}, fmt.Errorf("%w: vector length %d, expected %d", ErrInvalidSpec, len(spec.Vector.Vector), c.dims)
		}
		vector = &query.VectorSimilarity{
			Field:  string(spec.Vector.Field),
			Vector: spec.Vector.Vector,
			Boost:  spec.Vector.Boost,
		}
	}

	var text *query.MultiFieldMatch
	if spec.Text != nil {
		m, err := query.NewMultiFieldMatch(spec.Text.Fields, spec.Text.Text, spec.Text.TieBreaker)
		if err != nil {
			return ComposedQuery{}, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
		m.Boost = spec.Text.Boost
		text = &m
	}

	filters := query.And{Exprs: spec.Filters}

	var root query.Expr
	switch {
	case text != nil && vector != nil:
		// Hybrid: the similarity branch carries the filter conjunction as
		// its base, and the text branch is guarded by the same filters, so
		// both disjuncts respect the hard filters.
		vector.Filter = filters
		root = query.Or{Exprs: []query.Expr{
			query.And{Exprs: append(append([]query.Expr{}, spec.Filters...), *text)},
			*vector,
		}}
	case vector != nil:
		vector.Filter = filters
		root = *vector
	default:
		root = query.And{Exprs: append(append([]query.Expr{}, spec.Filters...), *text)}
	}

	projection := spec.Projection
	if len(projection.Include) == 0 && len(projection.Exclude) == 0 {
		// Vector fields are large float arrays; never ship them back unless
		// the caller asked for them.
		projection.Exclude = []string{string(VectorFieldQuestion), string(VectorFieldAnswer)}
	}

	return ComposedQuery{
		Root:       root,
		Limit:      spec.Limit,
		Projection: projection,
	}, nil
}
