package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrOffline indicates the upstream API is unreachable (timeout, DNS, connection refused)
	ErrOffline = errors.New("content service is unreachable")

	// ErrUnexpectedStatus indicates the upstream API answered with a non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrInvalidResponse indicates a malformed body or an API-level error code in a 200 response
	ErrInvalidResponse = errors.New("invalid response from content service")

	// ErrLocationUnavailable indicates no coordinates could be determined.
	// The remedy differs from a network retry, so the UI shows it separately.
	ErrLocationUnavailable = errors.New("location is unavailable")

	// ErrNotFound indicates a requested surah, collection or key does not exist
	ErrNotFound = errors.New("not found")
)

// IsRetryable reports whether err is a transient or malformed-response failure
// the user can retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrOffline) ||
		errors.Is(err, ErrUnexpectedStatus) ||
		errors.Is(err, ErrInvalidResponse)
}
