// Package errs provides the error taxonomy shared by the domain, the use cases
// and the HTTP boundary.
//
// Every kind follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ErrConflict, ...)
//   - a struct carrying the details
//   - constructors with and without a cause
//   - an Unwrap method returning the sentinel, so callers classify with errors.Is
//
// The HTTP adapter maps the sentinels onto status codes: not found to 404,
// invalid/required/out of range to 400, conflict to 409, external service to 502,
// unauthorized to 401 and forbidden to 403.
package errs
