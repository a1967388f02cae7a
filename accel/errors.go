package accel

import "errors"

var (
	// ErrInvalidGeometry mirrors scene.ErrInvalidGeometry for the build
	// path: non-finite vertex data reaching the BLAS builder.
	ErrInvalidGeometry = errors.New("accel: invalid geometry")

	// ErrLibraryUnavailable names the condition in which no
	// acceleration-capable device is found. Nothing in this package returns
	// it: native.Probe reports availability as a bool, and when it is false
	// NewWithOptions builds the instance-only Fallback itself.
	ErrLibraryUnavailable = errors.New("accel: native acceleration library unavailable")
)
