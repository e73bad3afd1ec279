package device

import "errors"

// Failure modes of the device collaborators. Providers return these so
// the fallback chains can log a reason before moving on; none of them
// ever reaches a registrar caller.
var (
	ErrPermissionDenied = errors.New("device: permission denied")
	ErrUnavailable      = errors.New("device: unavailable")
	ErrTimeout          = errors.New("device: timed out")
	ErrNoCamera         = errors.New("device: no camera found")
	ErrBusy             = errors.New("device: camera in use by another application")
	ErrUnsupported      = errors.New("device: not supported on this platform")
)
