package domain

import "errors"

// Error taxonomy shared by every service. Handlers map these to HTTP
// statuses, repositories translate store errors into them, so storage
// details never cross the API boundary.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTransient       = errors.New("transient store error")
)
