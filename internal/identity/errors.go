package identity

import (
	"errors"
	"fmt"
)

var (
	// ErrNoConnection indicates the request never reached the backend.
	ErrNoConnection = errors.New("no connection to identity backend")

	// ErrTimeout indicates the request or response deadline elapsed.
	ErrTimeout = errors.New("identity request timed out")

	// ErrDecoding indicates a 2xx response whose body could not be decoded.
	ErrDecoding = errors.New("malformed identity response")
)

// HTTPError is a non-2xx response with no decodable API error body.
type HTTPError struct {
	Code int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("identity backend returned status %d", e.Code)
}

// APIError is a structured error returned by the backend; the message is
// passed through verbatim.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}
