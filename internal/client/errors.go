package client

import (
	"errors"
	"fmt"
	"net/http"

	"swiftride/internal/domain"
)

// RequestError is a transport-level failure: the request never produced a
// response (connection refused, DNS failure, timeout).
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ResponseError is a non-success status returned by the backend, carrying
// the status code and the server's message when one was present.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var res *ResponseError
	return errors.As(err, &res) && res.StatusCode == http.StatusNotFound
}

// Message derives the single human-readable message for a failed call.
// Every caller that notifies the user goes through here, so one HTTP
// response can never produce two differently-worded notifications.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}

	var resErr *ResponseError
	if errors.As(err, &resErr) {
		if resErr.Message != "" {
			return resErr.Message
		}
		switch resErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "You are not authorized to perform this action"
		case http.StatusNotFound:
			return "The requested resource was not found"
		default:
			return fmt.Sprintf("HTTP error %d", resErr.StatusCode)
		}
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return "No response from server. Please check your connection."
	}

	return err.Error()
}
