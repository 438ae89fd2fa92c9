package query

import "errors"

// ErrBlankField is returned by the fragment constructors when a field name
// is empty or whitespace only.
var ErrBlankField = errors.New("blank field name")
