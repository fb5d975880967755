// Package apierr defines the error envelope shared by every endpoint.  All
// failures serialize as {code, message, details?} with a matching HTTP
// status, so clients can branch on the stable code instead of parsing
// messages.  Handlers build these with the constructors below and render
// them in one place.
package apierr

import "net/http"

// Error is an API failure.  Status is the HTTP status to respond with and
// is not part of the JSON body.
type Error struct {
    Status  int            `json:"-"`
    Code    string         `json:"code"`
    Message string         `json:"message"`
    Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

// Generic constructors, one per HTTP failure class used by the API.

func BadRequest(msg string) *Error {
    return &Error{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: msg}
}

func Unauthorized(msg string) *Error {
    return &Error{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: msg}
}

func Forbidden(msg string) *Error {
    return &Error{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: msg}
}

func NotFound(msg string) *Error {
    return &Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: msg}
}

func Conflict(msg string) *Error {
    return &Error{Status: http.StatusConflict, Code: "CONFLICT", Message: msg}
}

func Internal(msg string) *Error {
    return &Error{Status: http.StatusInternalServerError, Code: "INTERNAL", Message: msg}
}

// WithCode overrides the stable code, for the handful of responses that
// carry a more specific one (EMAIL_EXISTS, INVALID_CREDENTIALS, ...).
func (e *Error) WithCode(code string) *Error {
    e.Code = code
    return e
}
