package domain

import "errors"

var (
	// ErrInvalidInput marks malformed input to a core operation, distinct
	// from defined fallbacks (an unset blood group ranks to an empty
	// shortlist rather than an error).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition marks a donation-status change the lifecycle
	// does not permit. Out-of-order requests are rejected, never coerced.
	ErrInvalidTransition = errors.New("invalid donation status transition")
)
