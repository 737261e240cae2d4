/*
Package errs provides the custom error type and error code constants used by
the HTTP surface of the server.

Socket protocol outcomes (the per-command status strings) are protocol data,
not Go errors, and live in the collab package. CustomError covers everything
the plain HTTP endpoints can answer with: a business code, a user-facing
message, and an HTTP status.
*/
package errs

import (
	"fmt"
	"net/http"

	"github.com/MessiahAndrw/Collaborate/internal/pkg/logx"
)

// CustomError carries a business error code alongside the HTTP status used
// when reporting it to a client.
type CustomError struct {
	// Code is the business error code (see error_codes.go).
	Code int

	// Message is the user-facing error description.
	Message string

	// Status is the HTTP status code corresponding to this error.
	Status int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError returns a *CustomError for a predefined error code. An unknown
// code falls back to ErrUnknown.
func NewError(code int) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with an unknown code in errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &CustomError{
			Code:    unknownErr.Code,
			Message: unknownErr.Message,
			Status:  unknownErr.Status,
		}
	}

	customErr := templateErr

	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	return &customErr
}
