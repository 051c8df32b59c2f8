package graph

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for Microsoft Graph response classes.
var (
	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("graph: bad request")

	// ErrUnauthorized indicates the access token is invalid or expired.
	ErrUnauthorized = errors.New("graph: unauthorized")

	// ErrForbidden indicates the token lacks a required Graph permission.
	ErrForbidden = errors.New("graph: forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("graph: not found")

	// ErrRateLimited indicates the request was throttled by Microsoft Graph.
	ErrRateLimited = errors.New("graph: rate limited")

	// ErrServerError indicates a server-side error from Microsoft Graph.
	ErrServerError = errors.New("graph: server error")

	// ErrUnexpectedStatus covers non-success codes outside the classes above.
	ErrUnexpectedStatus = errors.New("graph: unexpected status")
)

// StatusError is returned for non-success Graph responses. It preserves the
// raw response body text so callers can surface Graph's own error detail.
type StatusError struct {
	Code int
	Body string
	kind error
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, body)
}

// Unwrap exposes the sentinel matching the status class, so callers can use
// errors.Is(err, graph.ErrNotFound) and similar.
func (e *StatusError) Unwrap() error { return e.kind }

// classify maps an HTTP status code to its sentinel error.
func classify(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		if code >= 500 {
			return ErrServerError
		}
		return ErrUnexpectedStatus
	}
}

// CheckStatus returns nil when resp carries a success status (200 or 201,
// plus any codes listed in extraSuccess) and a *StatusError otherwise.
func CheckStatus(resp *Response, extraSuccess ...int) error {
	code := resp.StatusCode
	if code == http.StatusOK || code == http.StatusCreated {
		return nil
	}
	for _, s := range extraSuccess {
		if code == s {
			return nil
		}
	}
	return &StatusError{Code: code, Body: string(resp.Body), kind: classify(code)}
}
