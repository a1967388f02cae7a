package raster

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// compileShader compiles one GLSL stage, grounded on the teacher pack's
// core-profile shader compiler (cogentcore-core's oswin/driver/internal/
// glgpu/shader.go: CreateShader, null-terminated source, COMPILE_STATUS
// check with an INFO_LOG_LENGTH-sized log buffer on failure).
func compileShader(src string, stage uint32) (uint32, error) {
	handle := gl.CreateShader(stage)

	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(log))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("%w: %s", ErrShaderCompile, log)
	}

	return handle, nil
}

// linkProgram compiles a vertex+fragment pair and links them into a
// program, deleting the intermediate shader objects on success.
func linkProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrProgramLink, log)
	}

	return program, nil
}
