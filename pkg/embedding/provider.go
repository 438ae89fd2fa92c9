package embedding

import (
	"context"
	"errors"
)

// ErrEmbeddingUnavailable wraps every transport or backend failure so
// callers can branch on "could not embed" without caring which provider
// was behind it.
var ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

// EmbeddingProvider defines the interface for generating text embeddings.
// Implementations must return a vector whose length matches Dimensions.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}
