// Package apierr carries the error taxonomy shared by the data-access
// layer: remote relational failures, remote object-storage failures and
// caller precondition violations.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeDataAccess      = "data_access"
	CodeStorage         = "storage"
	CodeInvalidArgument = "invalid_argument"
	CodeNotFound        = "not_found"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// DataAccess wraps a remote relational-service failure. The remote message
// text is preserved via the wrapped error.
func DataAccess(err error) *Error {
	return New(http.StatusBadGateway, CodeDataAccess, err)
}

// Storage wraps a remote object-storage failure.
func Storage(err error) *Error {
	return New(http.StatusBadGateway, CodeStorage, err)
}

func InvalidArgument(msg string) *Error {
	return New(http.StatusBadRequest, CodeInvalidArgument, errors.New(msg))
}

func NotFound(msg string) *Error {
	return New(http.StatusNotFound, CodeNotFound, errors.New(msg))
}

func HasCode(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

func IsInvalidArgument(err error) bool { return HasCode(err, CodeInvalidArgument) }
func IsNotFound(err error) bool        { return HasCode(err, CodeNotFound) }
