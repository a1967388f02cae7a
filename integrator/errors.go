package integrator

import "errors"

var (
	ErrSceneNotDefined  = errors.New("integrator: no scene defined")
	ErrCameraNotDefined = errors.New("integrator: no camera defined")
	ErrInterrupted      = errors.New("integrator: interrupted while rendering")
)
