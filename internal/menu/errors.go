package menu

import "errors"

// ErrNotFound reports an unknown food or condition identifier from
// operations that require the lookup to resolve, such as Compare. The
// evaluator never returns it; a failed lookup there degrades to an unknown
// verdict instead.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput reports a malformed top-level request, e.g. a non-positive
// meal count or a comparison with anything other than two identifiers.
var ErrInvalidInput = errors.New("invalid input")
