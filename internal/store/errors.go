package store

import "errors"

var (
	// ErrDuplicate means a record for the same user, type and date
	// already exists. The unique index makes this the authoritative
	// daily-uniqueness guard across concurrent sessions.
	ErrDuplicate = errors.New("store: attendance already registered for this date")

	// ErrInvalidRecord means a required field (user id, type) is missing.
	ErrInvalidRecord = errors.New("store: record is missing required fields")
)
