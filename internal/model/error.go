// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// Application level errors.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrConflict       = errors.New("resource conflict")
	ErrBusy           = errors.New("another operation is in progress")
	ErrEmptyDatabase  = errors.New("database is empty")
	ErrNoQuestions    = errors.New("no questions could be generated")
	ErrTableNotLoaded = errors.New("word table not loaded")

	ErrUnsupportedPropertyKind  = errors.New("unsupported property kind")
	ErrMissingRequiredTimestamp = errors.New("missing required timestamp")
	ErrMalformedResponseLine    = errors.New("malformed response line")
	ErrDuplicatePageID          = errors.New("duplicate page id")
	ErrExternalCall             = errors.New("external call failed")
)

// UnsupportedPropertyKindError is returned when a store property has a kind
// with no decoder.
type UnsupportedPropertyKindError struct {
	Property string
	Kind     string
}

func (e *UnsupportedPropertyKindError) Error() string {
	return fmt.Sprintf("unsupported property kind %q for property %q", e.Kind, e.Property)
}

func (e *UnsupportedPropertyKindError) Unwrap() error { return ErrUnsupportedPropertyKind }

// MissingRequiredTimestampError is returned when a page has no usable
// created_time property.
type MissingRequiredTimestampError struct {
	PageID string
	Err    error
}

func (e *MissingRequiredTimestampError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("page %s: missing required timestamp: %v", e.PageID, e.Err)
	}
	return fmt.Sprintf("page %s: missing required timestamp", e.PageID)
}

func (e *MissingRequiredTimestampError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMissingRequiredTimestamp, e.Err}
	}
	return []error{ErrMissingRequiredTimestamp}
}

// DuplicatePageIDError is returned when a query result lists the same page
// twice.
type DuplicatePageIDError struct {
	PageID string
}

func (e *DuplicatePageIDError) Error() string {
	return fmt.Sprintf("page %s: duplicate page id", e.PageID)
}

func (e *DuplicatePageIDError) Unwrap() error { return ErrDuplicatePageID }

// MalformedResponseLineError describes one language model output line that
// does not follow the "Q: ...;A:..." grammar.
type MalformedResponseLineError struct {
	LineNo int
	Line   string
}

func (e *MalformedResponseLineError) Error() string {
	return fmt.Sprintf("line %d: malformed response line %q", e.LineNo, e.Line)
}

func (e *MalformedResponseLineError) Unwrap() error { return ErrMalformedResponseLine }

// ExternalCallError wraps a failure of the document store or the language
// model. Service is "notion" or "gemini".
type ExternalCallError struct {
	Service    string
	Op         string
	StatusCode int
	Err        error
}

func (e *ExternalCallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Service, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *ExternalCallError) Unwrap() []error { return []error{ErrExternalCall, e.Err} }

// AppError carries a user facing code and message together with the cause.
type AppError struct {
	Code    string
	Message string
	Field   string
	Err     error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{Code: code, Message: message, Field: field, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Detail returns the part of the error that is safe to show to a client.
func (e *AppError) Detail() ErrorDetail {
	return ErrorDetail{Code: e.Code, Message: e.Message, Field: e.Field}
}

// ErrorDetail is the body of an API error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse is the JSON body of every error response.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
