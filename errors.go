package codecrusher

import "errors"

var (
	// ErrInvalidProvider is returned when a provider name is not supported
	ErrInvalidProvider = errors.New("invalid provider")
)
