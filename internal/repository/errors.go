// Package repository defines sentinel error values shared across the
// repositories.  Handlers match on these with errors.Is to pick the
// HTTP status for a failure: validation problems become 400, missing
// records become 404, and state conflicts (losing the quota race,
// deleting a gift that still has reservations) become 409.
package repository

import "errors"

// ErrValidation wraps write-time rule violations such as negative
// amounts, zero quotas or an empty contributor name.  The wrapped
// message carries the specific rule that failed.
var ErrValidation = errors.New("validation failed")

// ErrGiftNotFound is returned when a gift id does not exist, or when a
// purchase targets a gift that has been deactivated.  The public flow
// does not distinguish the two cases.
var ErrGiftNotFound = errors.New("gift not found")

// ErrReservationNotFound is returned for unknown reservation ids,
// including a second cancellation of an already-cancelled reservation.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrGuestNotFound is returned for unknown guest ids or invite tokens.
var ErrGuestNotFound = errors.New("guest not found")

// ErrInsufficientQuota is returned when the atomic check-and-increment
// rejects a purchase because fewer quotas remain than requested.
// Clients should re-fetch availability and offer a smaller quantity
// instead of showing a generic failure.
var ErrInsufficientQuota = errors.New("insufficient quota")

// ErrConflict is returned when an operation cannot proceed because of
// dependent state, such as deleting a gift that still has
// reservations without requesting a cascade.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when creating a user with an email that
// is already registered.
var ErrEmailExists = errors.New("email already exists")
