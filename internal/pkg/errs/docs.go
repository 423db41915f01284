// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a numeric value is outside its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - QuantityExceededError: For when a quantity adjustment would exceed a line's total
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrQuantityExceeded)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Reconciliation code depends on this classification: quantity-guard rejections
// unwrap to ErrQuantityExceeded, missing entities unwrap to ErrObjectNotFound, and
// malformed external input unwraps to ErrValueIsInvalid or ErrValueIsRequired.
// Handlers at the unit-of-work boundary translate these into caller-visible results
// instead of letting them propagate as unhandled faults.
package errs
