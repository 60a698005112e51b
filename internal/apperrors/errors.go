// Package apperrors defines the error taxonomy for booking operations.
// Callers branch on these sentinels with errors.Is; messages carry the
// identifier that failed to resolve.
package apperrors

import "errors"

var (
	// ErrStorageUnavailable means the backing store could not be reached.
	// Fatal for the current operation, never retried.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotFound means the identifier does not resolve to any live booking.
	ErrNotFound = errors.New("booking not found")

	// ErrDataInconsistency means a phone index entry references a booking
	// that no longer exists. Kept distinct from ErrNotFound so callers can
	// tell "never booked" from index/store drift.
	ErrDataInconsistency = errors.New("booking data inconsistency")

	// ErrValidation means a required field was missing on create. Rejected
	// before any write.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyConfirmed means a create call targeted an email whose
	// booking is completed and still valid. The confirmed record must be
	// consumed, cancelled, or expired before a new booking is accepted.
	ErrAlreadyConfirmed = errors.New("booking already confirmed")

	// ErrAlreadyExists is returned by the store when a concurrent create
	// won the insert race for the same storage key.
	ErrAlreadyExists = errors.New("booking already exists")
)
