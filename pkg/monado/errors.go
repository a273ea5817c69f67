package monado

import "errors"

var (
	// ErrClosed is returned by calls made after the connection was closed.
	ErrClosed = errors.New("monado: connection closed")

	// ErrReleased is returned when a shared handle is released twice.
	ErrReleased = errors.New("monado: shared handle already released")
)
