// Package errs provides the standardized error types used across the
// process-service application. Every failure a caller can act on falls into
// one of a small number of kinds:
//
//   - ValueIsRequiredError / ValueIsInvalidError: a business invariant or
//     field validation was violated
//   - ObjectNotFoundError: an order, draft, bid or recipient id is unknown
//   - ConflictError: state changed concurrently (bid race, status advanced
//     past editability between read and commit)
//   - UnauthorizedError: the acting identity lacks rights over the target
//     tenant, order or draft
//
// Each kind follows the same pattern: a sentinel error variable, a struct
// carrying details, constructors with and without a cause, an Error() method
// and an Unwrap() method so errors.Is can classify any wrapped instance.
// Errors are always returned to the caller, never swallowed; translating them
// into user-facing messages is the transport layer's job.
package errs
