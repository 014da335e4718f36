package service

import "errors"

// Shared error sentinels for the container services. Validation failures
// abort the operation with no state change; the API layer surfaces them as a
// transient notification rather than a hard failure.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrNothingToCancel = errors.New("nothing to cancel")
)
