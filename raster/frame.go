package raster

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Options configures the viewport window and render budget.
type Options struct {
	FrameW uint32
	FrameH uint32

	// PolyBudget is the scene-wide triangle ceiling the LOD partition
	// keeps the near set within (spec §4.5's "e.g. 50M triangles").
	PolyBudget uint64

	// VSync enables frame-pacing (sync-to-vblank), the spec's default
	// presentation mode.
	VSync bool
}

func DefaultOptions() Options {
	return Options{FrameW: 1280, FrameH: 720, PolyBudget: 50_000_000, VSync: true}
}

// openWindow creates the core-profile GL context the viewport renders
// into. The teacher's own window setup (renderer/opengl.go's initGL)
// targets the legacy v2.1/immediate-mode profile; this upgrades to a
// core 3.3 context (go-gl/v3.3-core + glfw v3.3) since spec §4.5 requires
// instanced array draw calls, which the immediate-mode pipeline cannot
// express — the GPU-abstraction Open Question SPEC_FULL.md resolves in
// favor of this upgrade rather than the teacher's original binding.
func openWindow(opts Options) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrContextInit, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(int(opts.FrameW), int(opts.FrameH), "scenecore", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWindowCreate, err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrContextInit, err)
	}

	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	return window, nil
}

// buildProxyBox uploads a unit cube mesh (8 unique positions expanded to
// 24 vertices for flat per-face normals, 12 triangles) centered on the
// origin, used as the far-LOD draw target in place of a prototype's full
// mesh.
func buildProxyBox(initialInstanceCapacity int) *GPUMesh {
	type face struct {
		normal [3]float32
		verts  [4][3]float32
	}
	faces := []face{
		{[3]float32{0, 0, 1}, [4][3]float32{{-.5, -.5, .5}, {.5, -.5, .5}, {.5, .5, .5}, {-.5, .5, .5}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{.5, -.5, -.5}, {-.5, -.5, -.5}, {-.5, .5, -.5}, {.5, .5, -.5}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-.5, .5, .5}, {.5, .5, .5}, {.5, .5, -.5}, {-.5, .5, -.5}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-.5, -.5, -.5}, {.5, -.5, -.5}, {.5, -.5, .5}, {-.5, -.5, .5}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{.5, -.5, .5}, {.5, -.5, -.5}, {.5, .5, -.5}, {.5, .5, .5}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-.5, -.5, -.5}, {-.5, -.5, .5}, {-.5, .5, .5}, {-.5, .5, -.5}}},
	}

	var vertices []float32
	var indices []uint32
	var base uint32
	for _, f := range faces {
		for _, v := range f.verts {
			vertices = append(vertices, v[0], v[1], v[2], f.normal[0], f.normal[1], f.normal[2], 0, 0)
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
		base += 4
	}

	return buildGeometryRaw(vertices, indices, 12, initialInstanceCapacity)
}
