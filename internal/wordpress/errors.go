package wordpress

import (
	"errors"
	"fmt"
)

// ErrConfiguration is returned by every call when the client has no base URL
// (or an unusable one). No network request is attempted.
var ErrConfiguration = errors.New("wordpress: base URL is not configured")

// ErrNotFound is returned by slug lookups that match nothing. The HTTP
// request itself succeeded with an empty list.
var ErrNotFound = errors.New("wordpress: not found")

// TransportError reports a failure to reach the API or read its response.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("wordpress: request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError reports a response outside the 2xx range.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("wordpress: %s returned %d %s", e.URL, e.StatusCode, e.Status)
}

// FormatError reports a response that is not JSON. The usual cause is a base
// URL that points at an HTML page instead of the REST API.
type FormatError struct {
	URL         string
	ContentType string
	Err         error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wordpress: decoding response from %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("wordpress: %s returned non-JSON content type %q, check the configured base URL", e.URL, e.ContentType)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
