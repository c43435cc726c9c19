package core

import "fmt"

// AuthenticationError means the login flow completed but the server
// did not hand back a session.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// APIError is a non-2xx response from an endpoint, after retries.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// ParsingError means a response body arrived but could not be
// understood.
type ParsingError struct {
	Message string
	Err     error
}

func (e *ParsingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ParsingError) Unwrap() error {
	return e.Err
}
