package testmail

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned before any request is made when the API key or
	// namespace is blank.
	ErrMissingCredentials = errors.New("api key and namespace are required")

	// ErrMalformedResponse indicates the endpoint returned something other than a JSON inbox
	// with an emails array.
	ErrMalformedResponse = errors.New("malformed response from retrieval endpoint")
)

// APIError is returned when the endpoint answers with a result other than "success".
type APIError struct {
	Result  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("retrieval failed: result %q", e.Result)
	}
	return "retrieval failed: " + e.Message
}

// NetworkError wraps transport level failures, including timeouts.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "request failed: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
