package search

import "errors"

var (
	// ErrInvalidSpec marks a programming-contract violation while building a
	// query: wrong vector dimensionality, unknown vector field, or a spec
	// with neither a text nor a vector clause. Never corrected silently.
	ErrInvalidSpec = errors.New("invalid query spec")

	// ErrSearchUnavailable marks a transport or malformed-response failure
	// from the search engine. No partial results accompany it.
	ErrSearchUnavailable = errors.New("search unavailable")
)
