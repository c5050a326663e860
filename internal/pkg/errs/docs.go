// Package errs provides standardized error types for the purchases application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: for when an object cannot be found
//   - ValueIsRequiredError: for when a required value is missing
//   - ValueIsInvalidError: for when a value is invalid
//   - DataIntegrityError: for rejected status transitions, stock shortfalls,
//     and other business integrity violations
//   - VersionConflictError: for optimistic-concurrency update conflicts
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method resolving to the sentinel, so callers can classify
//     failures with errors.Is without depending on concrete types
//
// The sentinel taxonomy drives HTTP status mapping at the edge: not-found
// errors become 404 responses, integrity violations and invalid values
// become 400.
package errs
