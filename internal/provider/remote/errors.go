package remote

import "errors"

var (
	ErrServiceUnavailable = errors.New("embedding service unavailable")
	ErrInvalidResponse    = errors.New("invalid response from embedding service")
	ErrCountMismatch      = errors.New("embedding count does not match batch size")
)
