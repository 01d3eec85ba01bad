// Package serviceerr defines the error taxonomy of the terminal client.
//
// API responses that do not carry a 2xx status are surfaced as *Error values
// so that callers can branch on the code (most importantly: authorization
// failures, which the gateway recovers via the refresh protocol) without
// string matching.
package serviceerr

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeUnknown          Code = "unknown"
	CodeInvalidRequest   Code = "invalid_request"
	CodeUnauthorized     Code = "unauthorized"
	CodeForbidden        Code = "forbidden"
	CodeNotFound         Code = "not_found"
	CodeConflict         Code = "conflict"
	CodeValidation       Code = "validation_error"
	CodeServerError      Code = "server_error"
	CodeUnavailable      Code = "temporarily_unavailable"
	CodeNoRefreshToken   Code = "no_refresh_token"
	CodeRefreshFailed    Code = "refresh_failed"
	CodeNoCredentials    Code = "no_credentials"
	CodeNotReplayable    Code = "not_replayable"
	CodeNotAuthenticated Code = "not_authenticated"
)

// Error is a coded error. Err is the machine-readable code, Description the
// human-readable detail reported by the platform API (may be empty).
type Error struct {
	Err         Code
	Description string
}

var (
	ErrUnknown          = &Error{Err: CodeUnknown, Description: "unknown error"}
	ErrUnauthorized     = &Error{Err: CodeUnauthorized, Description: "missing, invalid or expired credential"}
	ErrForbidden        = &Error{Err: CodeForbidden, Description: "operation not allowed"}
	ErrNotFound         = &Error{Err: CodeNotFound, Description: "not found"}
	ErrConflict         = &Error{Err: CodeConflict, Description: "already exists"}
	ErrNoRefreshToken   = &Error{Err: CodeNoRefreshToken, Description: "no refresh token available"}
	ErrNoCredentials    = &Error{Err: CodeNoCredentials, Description: "no persisted credentials"}
	ErrNotReplayable    = &Error{Err: CodeNotReplayable, Description: "request body cannot be replayed"}
	ErrNotAuthenticated = &Error{Err: CodeNotAuthenticated, Description: "not logged in"}
)

func (e *Error) Error() string {
	if e.Description == "" {
		return string(e.Err)
	}

	return string(e.Err) + ": " + e.Description
}

// HTTPStatus maps the code back to the HTTP status the platform API uses for
// it. Unknown codes map to 500.
func (e *Error) HTTPStatus() int {
	switch e.Err {
	case CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeRefreshFailed:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus builds the coded error matching an HTTP response status.
func FromStatus(status int, description string) *Error {
	var code Code

	switch status {
	case http.StatusBadRequest:
		code = CodeInvalidRequest
	case http.StatusUnauthorized:
		code = CodeUnauthorized
	case http.StatusForbidden:
		code = CodeForbidden
	case http.StatusNotFound:
		code = CodeNotFound
	case http.StatusConflict:
		code = CodeConflict
	case http.StatusUnprocessableEntity:
		code = CodeValidation
	case http.StatusServiceUnavailable:
		code = CodeUnavailable
	default:
		if status >= 500 {
			code = CodeServerError
		} else {
			code = CodeUnknown
		}
	}

	return &Error{Err: code, Description: description}
}

// IsAuthError reports whether err is an authorization failure (HTTP 401
// equivalent). These are the only failures the gateway recovers from.
func IsAuthError(err error) bool {
	var serr *Error
	if !errors.As(err, &serr) {
		return false
	}

	return serr.Err == CodeUnauthorized
}
