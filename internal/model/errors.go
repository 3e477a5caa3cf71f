package model

import "errors"

// Error taxonomy of the engine. Handlers map these to HTTP status codes;
// everything else is an internal error.
var (
	// ErrNotFound: quote, author, pair or vote absent.
	ErrNotFound = errors.New("not found")

	// ErrInvalidValue: vote value outside {-1, 0, 1}.
	ErrInvalidValue = errors.New("invalid vote value")

	// ErrStorageUnavailable: the backing store failed; the operation was
	// not applied and may be retried.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
