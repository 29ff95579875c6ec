package application

import "errors"

// ErrRateLimited is returned by externally-facing test operations when the
// shared token bucket is exhausted. The HTTP boundary maps it to 429.
var ErrRateLimited = errors.New("rate limit exceeded")

// ErrInvalidSession is returned when a session token fails verification.
var ErrInvalidSession = errors.New("invalid session token")

// ValidationError reports a missing required request field. The HTTP boundary
// maps it to 400.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}
