// Package errs provides standardized error types for the pizzeria application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - ValidationError: Aggregates every field rule broken by one entity or value object
//   - ConflictError: For duplicates and transitions that contradict existing state
//   - DomainRuleError: For lifecycle operations an aggregate refuses
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels; the HTTP adapter
// is the only place that maps them to transport status codes.
package errs
