package apperrors

import (
	"errors"
	"fmt"
	"sort"
)

// ErrSightingNotFound is returned when the referenced master record does not
// exist at transaction time. Callers only ever see it wrapped in a ServiceError.
var ErrSightingNotFound = errors.New("sighting not found")

// ValidationError reports one or more fields that failed their rule. Field
// and Message describe the first offending field; Errors holds all of them.
type ValidationError struct {
	Field   string
	Message string
	Errors  map[string]string
}

// NewValidationError creates a ValidationError for field with the full error map.
func NewValidationError(field, message string, all map[string]string) *ValidationError {
	if all == nil {
		all = map[string]string{field: message}
	}
	return &ValidationError{Field: field, Message: message, Errors: all}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// ServiceError reports that a sighting operation could not complete. It keeps
// the underlying cause for diagnostics and the context the operation ran with.
type ServiceError struct {
	Op      OperationCode
	Err     error
	Context map[string]any
}

// NewServiceError wraps cause as a failure of op.
func NewServiceError(op OperationCode, cause error, context map[string]any) *ServiceError {
	return &ServiceError{Op: op, Err: cause, Context: context}
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return string(e.Op)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ErrorCode returns the operation code.
func (e *ServiceError) ErrorCode() string { return string(e.Op) }

// ContextKeys returns the context keys in sorted order, for logging.
func (e *ServiceError) ContextKeys() []string {
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StorageError is a storage-layer failure translated at the point the driver
// error was caught. Raw keeps the backend's own code for diagnostics.
type StorageError struct {
	Code StorageCode
	Raw  string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("storage %s (%s)", e.Code, e.Raw)
	}
	return fmt.Sprintf("storage %s (%s): %v", e.Code, e.Raw, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ErrorCode returns the storage code.
func (e *StorageError) ErrorCode() string { return string(e.Code) }

// IdentityError is a reviewer identity/credential failure.
type IdentityError struct {
	Code IdentityCode
	Raw  string
	Err  error
}

func (e *IdentityError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("identity %s (%s)", e.Code, e.Raw)
	}
	return fmt.Sprintf("identity %s (%s): %v", e.Code, e.Raw, e.Err)
}

func (e *IdentityError) Unwrap() error { return e.Err }

// ErrorCode returns the identity code.
func (e *IdentityError) ErrorCode() string { return string(e.Code) }

// NewStorageError builds a StorageError from a backend code. Unrecognized raw
// codes keep StorageUnknown so the classifier can log them.
func NewStorageError(code StorageCode, raw string, cause error) *StorageError {
	return &StorageError{Code: code, Raw: raw, Err: cause}
}

// NewIdentityError builds an IdentityError.
func NewIdentityError(code IdentityCode, raw string, cause error) *IdentityError {
	return &IdentityError{Code: code, Raw: raw, Err: cause}
}
