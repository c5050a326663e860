package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used for classification with errors.Is.
// Each typed error below unwraps to exactly one of these.
var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsRequired        = errors.New("value is required")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrDataIntegrityViolation = errors.New("data integrity violation")
	ErrVersionConflict        = errors.New("version conflict")
)

// sanitize collapses newlines so error messages stay single-line in logs
// and HTTP payloads.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// ObjectNotFoundError indicates that a lookup found no matching object.
// Message carries the caller-facing text; ID identifies what was searched for.
type ObjectNotFoundError struct {
	Message string
	ID      any
	Cause   error
}

// NewObjectNotFoundError creates a not-found error with a caller-facing message
// and the identifier that produced no match.
func NewObjectNotFoundError(message string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{Message: message, ID: id}
}

// NewObjectNotFoundErrorWithCause creates a not-found error wrapping an
// underlying cause, typically a storage-layer error.
func NewObjectNotFoundErrorWithCause(message string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{Message: message, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s (id: %v) (cause: %s)", e.Message, e.ID, e.Cause))
	}
	return sanitize(e.Message)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing required value.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a required-value error wrapping an
// underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("value is required: %s (cause: %s)", e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("value is required: %s", e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates that a supplied value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for an invalid value.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an invalid-value error wrapping the
// validation failure that caused it.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("value is invalid: %s (cause: %s)", e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("value is invalid: %s", e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// DataIntegrityError indicates that an operation would violate a business
// integrity rule: an illegal status transition, an insufficient stock level,
// or a conflicting concurrent update. The message is caller-facing.
type DataIntegrityError struct {
	Message string
	Cause   error
}

// NewDataIntegrityError creates an integrity violation error with a
// caller-facing message describing the rejected operation.
func NewDataIntegrityError(message string) *DataIntegrityError {
	return &DataIntegrityError{Message: message}
}

// NewDataIntegrityErrorWithCause creates an integrity violation error wrapping
// an underlying cause.
func NewDataIntegrityErrorWithCause(message string, cause error) *DataIntegrityError {
	return &DataIntegrityError{Message: message, Cause: cause}
}

func (e *DataIntegrityError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s (cause: %s)", e.Message, e.Cause))
	}
	return sanitize(e.Message)
}

func (e *DataIntegrityError) Unwrap() error {
	return ErrDataIntegrityViolation
}

// VersionConflictError indicates that an update expected a version that no
// longer matches the stored row, i.e. a concurrent writer got there first.
type VersionConflictError struct {
	ID      any
	Version int64
}

// NewVersionConflictError creates a version conflict error for the given
// object id and the version the writer expected.
func NewVersionConflictError(id any, version int64) *VersionConflictError {
	return &VersionConflictError{ID: id, Version: version}
}

func (e *VersionConflictError) Error() string {
	return sanitize(fmt.Sprintf("concurrent update detected: %v (expected version %d)", e.ID, e.Version))
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
