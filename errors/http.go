package errors

import (
	stderrors "errors"
	"net/http"
)

// MapToHTTPStatus translates a failure from the service layer into the
// status code the HTTP API exposes. Unknown errors are treated as internal:
// nothing is silently downgraded to a success.
func MapToHTTPStatus(err error) int {
	switch {
	case stderrors.Is(err, ErrInvalidContent):
		return http.StatusBadRequest
	case stderrors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case stderrors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case stderrors.Is(err, ErrPostNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, ErrStoreUnavailable), stderrors.Is(err, ErrDirectoryUnavailable):
		return http.StatusServiceUnavailable
	default:
		// ErrIdentityNotFound lands here on purpose: a post pointing at an
		// unresolvable author is corrupted data, not a client mistake.
		return http.StatusInternalServerError
	}
}
