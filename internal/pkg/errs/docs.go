// Package errs provides the error taxonomy of the dispatch engine.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g., ErrObjectNotFound)
//   - a struct type carrying the details
//   - constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Dispatch-specific classes:
//   - ObjectNotFoundError: a referenced order or driver does not exist
//   - InvalidTransitionError: a status change is not allowed from the current state
//   - ErrMissingEvidence: proof of delivery without signature and photo
//   - OracleUnavailableError: an external oracle failed, timed out or answered garbage
//   - ErrPermissionDenied / ErrCapabilityUnavailable: live location could not be obtained
//
// Generic validation classes: ValueIsRequiredError, ValueIsInvalidError,
// ValueIsOutOfRangeError.
package errs
