package errors

import "errors"

// This package defines the sentinel errors shared by the client. Lower layers wrap
// them with context; the controller, services and API layer classify failures with
// `errors.Is()` instead of inspecting status codes or transport errors directly.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data failed validation, either locally
	// or as reported by the AI service.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that the AI service rejected an operation because it
	// conflicts with existing state (e.g., signing up with a taken email).
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the credential is valid but not allowed to
	// perform the requested action.
	ErrPermission = errors.New("permission denied")

	// ErrInternal signifies an unexpected failure, on either side of the wire.
	ErrInternal = errors.New("internal server error")

	// ErrUnauthenticated signifies a missing or rejected session credential.
	// It is never shown to the user; it triggers the clear-and-redirect path.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnreachable signifies that the AI service could not be reached at all
	// (dial failure, timeout, cancelled request).
	ErrUnreachable = errors.New("ai service unreachable")

	// ErrMalformedResponse signifies a successful status with a body that could
	// not be decoded.
	ErrMalformedResponse = errors.New("malformed response")
)
