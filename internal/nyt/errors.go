package nyt

import "errors"

// Sentinel errors classifying upstream failures. Callers match them with
// [errors.Is]; the wrapped error carries the endpoint and status detail.
var (
	// ErrAuth indicates the session cookie was rejected upstream
	// (HTTP 401 or 403), typically because it has expired.
	ErrAuth = errors.New("authentication rejected by upstream")

	// ErrNotFound indicates upstream has no record for the requested
	// resource (HTTP 404).
	ErrNotFound = errors.New("not found upstream")

	// ErrUpstream indicates a network failure, timeout, unexpected HTTP
	// status, or a response body that could not be parsed.
	ErrUpstream = errors.New("upstream request failed")
)
