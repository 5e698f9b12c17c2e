package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/gofiber/fiber/v2"
)

// Error kinds raised by the catalog handlers.
const (
	KindInvalidInput        = "invalid-input"
	KindUnavailable         = "resource-unavailable"
	KindConnectivityFailure = "connectivity-failure"
	KindMissingKey          = "missing-key"
	KindInternal            = "internal"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Kind reports the error category used for metrics labels and response codes.
func (e *DomainError) Kind() string {
	return e.Code
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewInvalidInput(message string, details map[string]any) error {
	return NewDomainError(KindInvalidInput, message, http.StatusBadRequest, details)
}

func NewUnavailable(message string) error {
	return NewDomainError(KindUnavailable, message, http.StatusServiceUnavailable, nil)
}

func NewConnectivityFailure(message string, err error) error {
	return &DomainError{
		Code:       KindConnectivityFailure,
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewMissingKey(message string, details map[string]any) error {
	return NewDomainError(KindMissingKey, message, http.StatusNotFound, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       KindInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Kind classifies err for telemetry. The first error in the chain that
// declares a kind wins; otherwise the concrete type name of err is used.
// The message never takes part in classification.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		if kind := k.Kind(); kind != "" {
			return kind
		}
	}
	return TypeName(err)
}

// TypeName returns the package-qualified type name of err with pointers stripped,
// e.g. "fiber.Error" or "errors.errorString".
func TypeName(err error) string {
	t := reflect.TypeOf(err)
	if t == nil {
		return "error"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "error"
	}
	return t.String()
}

// ToDomainError converts generic errors to DomainError for the response writer.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{
			Code:       TypeName(fiberErr),
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
			Err:        err,
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       KindInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
