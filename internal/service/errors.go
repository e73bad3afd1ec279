package service

import "errors"

// Precondition violations are detected before any I/O and surface
// directly to the caller; ErrPersistence is the only hard failure the
// register flow itself can produce.
var (
	ErrNotAuthenticated     = errors.New("attendance: user not authenticated")
	ErrOutOfOrder           = errors.New("attendance: check-out requires a prior check-in today")
	ErrAlreadyRegistered    = errors.New("attendance: already registered for this date")
	ErrUnknownType          = errors.New("attendance: unknown attendance type")
	ErrRegistrationInFlight = errors.New("attendance: a registration is already in progress")
	ErrPersistence          = errors.New("attendance: could not persist record")
)
