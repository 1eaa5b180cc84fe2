// ABOUTME: Error types shared by the feed services and storage layer
// ABOUTME: Lets handlers map missing items, rejected input and upstream failures to HTTP responses

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError reports a stored resource that does not exist, typically
// an item id that was never created or points at a hard-removed row.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Resource, e.ID)
}

// ItemNotFound builds the not-found error for a feed item id.
func ItemNotFound(id string) error {
	return &NotFoundError{Resource: "item", ID: id}
}

// ValidationError reports rejected input, named after the request field,
// query parameter or cursor that carried it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Invalid builds a validation error for a single named field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ExternalAPIError reports a failed call to an upstream service, such as
// the liturgy provider or the host of an imported feed.
type ExternalAPIError struct {
	API        string
	StatusCode int
	Message    string
}

func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("upstream %s returned %d: %s", e.API, e.StatusCode, e.Message)
}

// Upstream builds an external-API error for a named service.
func Upstream(api string, statusCode int, message string) error {
	return &ExternalAPIError{API: api, StatusCode: statusCode, Message: message}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI reports whether err is an ExternalAPIError.
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// WrapError annotates err with context, passing nil through unchanged.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
