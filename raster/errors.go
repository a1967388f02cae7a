package raster

import "errors"

var (
	ErrShaderCompile = errors.New("raster: shader compilation failed")
	ErrProgramLink   = errors.New("raster: program link failed")
	ErrWindowCreate  = errors.New("raster: failed to create window")
	ErrContextInit   = errors.New("raster: failed to initialize opengl context")
)
