package internal

import (
	"errors"
	"fmt"
)

var (
	ErrConnectivity = errors.New("connectivity failure")
	ErrProvider     = errors.New("provider error")
	ErrDataNotFound = errors.New("data not found")
	ErrEmptyRange   = errors.New("empty range")
	ErrInvalidInput = errors.New("invalid input")
)

// BusinessError is an error meant to be shown to the caller as is.
// Kind is one of the Err* sentinels above and is reachable through errors.Is.
type BusinessError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	kind    error
}

func (e *BusinessError) Error() string { return e.Message }

func (e *BusinessError) Unwrap() error { return e.kind }

func BizError(kind error, code, msg string) *BusinessError {
	return &BusinessError{Code: code, Message: msg, kind: kind}
}

func invalidInput(format string, args ...any) *BusinessError {
	return BizError(ErrInvalidInput, "invalid_input", fmt.Sprintf(format, args...))
}

func dataNotFound(format string, args ...any) *BusinessError {
	return BizError(ErrDataNotFound, "data_not_found", fmt.Sprintf(format, args...))
}

func emptyRange(msg string) *BusinessError {
	return BizError(ErrEmptyRange, "empty_range", msg)
}

func ConnectivityError(format string, args ...any) *BusinessError {
	return BizError(ErrConnectivity, "connectivity_failure", fmt.Sprintf(format, args...))
}

func ProviderError(info string) *BusinessError {
	return BizError(ErrProvider, "provider_error", "API Error: "+info)
}
