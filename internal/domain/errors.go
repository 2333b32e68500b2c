package domain

import "errors"

// Sentinel errors shared across services. Controllers branch on these with
// errors.Is to map each kind to its own HTTP status and error code.
var (
	// ErrInvalidInput is returned when required identifiers are missing or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProfileNotFound is returned when no profile row exists for the user.
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrProfileIncomplete is returned when the profile exists but year, dept,
	// roll number, or mobile number is missing. Recoverable: the caller should
	// prompt the user to complete their profile, not show a generic error.
	ErrProfileIncomplete = errors.New("profile incomplete")

	// ErrAlreadyRegistered is returned when a confirmed registration already
	// exists for the (event, user) pair.
	ErrAlreadyRegistered = errors.New("already registered for this event")

	// ErrRegistrationClosed is returned when the event status is Closed or Completed.
	ErrRegistrationClosed = errors.New("event is not open for registration")

	// ErrEventFull is returned when the event has no remaining capacity.
	ErrEventFull = errors.New("event is full")

	// ErrRegistrationNotFound is returned on cancellation of an unknown registration.
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrAlreadyCancelled is returned on cancellation of an already-cancelled
	// registration. Benign: the operation is idempotent and the count is not
	// decremented twice.
	ErrAlreadyCancelled = errors.New("registration already cancelled")

	// ErrPartialFailure is returned when the ledger row was written but the
	// event count update could not be completed (or vice versa). The state
	// needs operator reconciliation and must never be swallowed.
	ErrPartialFailure = errors.New("registration partially applied; needs reconciliation")

	// ErrStoreUnavailable is returned on transient data store errors. The whole
	// operation is safe to retry from the top.
	ErrStoreUnavailable = errors.New("data store unavailable")

	// ErrForbidden is returned when the caller lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateEmail is returned when signup hits an existing email.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidCredentials is returned on login with an unknown email or a
	// wrong password. Deliberately the same error for both.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
