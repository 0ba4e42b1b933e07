package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrSaveInFlight          = errors.New("a save is already in flight for this roster")
	ErrDataIntegrity         = errors.New("backend data integrity fault")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
