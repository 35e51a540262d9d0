package usecase

import "errors"

// Sentinel errors for business rule violations. Handlers translate these
// to HTTP status codes with errors.Is.
var (
	ErrNoSeatsSelected    = errors.New("reservation has no seats selected")
	ErrSeatConflict       = errors.New("one or more seats are already taken for this screening")
	ErrCapacityExceeded   = errors.New("reservation exceeds remaining room capacity")
	ErrSeatCountMismatch  = errors.New("selected seat count does not match ticket quantities")
	ErrInsufficientPoints = errors.New("not enough loyalty points to redeem any ticket")
	ErrSeatsLocked        = errors.New("room has confirmed reservations, seat layout is locked")
	ErrInvalidTransition  = errors.New("reservation state does not allow this transition")
)
