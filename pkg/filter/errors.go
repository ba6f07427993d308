package filter

import "errors"

// Common errors
var (
	ErrInvalidAttribute = errors.New("attribute must be a valid resource attribute")
)
