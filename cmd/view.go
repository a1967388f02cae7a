package cmd

import (
	"runtime"

	"github.com/achilleasa/scenecore/raster"
	"github.com/achilleasa/scenecore/types"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/urfave/cli"
)

const (
	mouseSensitivityX float32 = 0.005
	mouseSensitivityY float32 = 0.005
	dollySpeed        float32 = 1.1
)

// RenderInteractive opens a viewport window and drives raster.Pipeline at
// interactive rates over an orbit camera, following this core's C5
// contract: the driver owns the window/event loop and calls RenderFrame
// once per tick.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	scn, err := loadScene(ctx)
	if err != nil {
		return err
	}

	runtime.LockOSThread()

	opts := raster.DefaultOptions()
	opts.FrameW = uint32(ctx.Int("width"))
	opts.FrameH = uint32(ctx.Int("height"))

	pipeline, err := raster.New(opts)
	if err != nil {
		return err
	}
	defer pipeline.Close()
	pipeline.BuildMeshes(scn)

	cam := types.NewOrbitCamera(types.Vec3{}, float32(ctx.Float64("distance")), 45.0)
	cam.SetupProjection(float32(opts.FrameW)/float32(opts.FrameH), 0.01, 1000.0)

	window := pipeline.Window()
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	var lastCursorPos types.Vec2
	var dragging bool

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		if action == glfw.Press {
			x, y := w.GetCursorPos()
			lastCursorPos = types.Vec2{float32(x), float32(y)}
			dragging = true
		} else {
			dragging = false
		}
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if !dragging {
			return
		}
		newPos := types.Vec2{float32(x), float32(y)}
		delta := newPos.Sub(lastCursorPos)
		lastCursorPos = newPos
		cam.Orbit(delta[0]*mouseSensitivityX, -delta[1]*mouseSensitivityY)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		if yoff > 0 {
			cam.Dolly(1.0 / dollySpeed)
		} else if yoff < 0 {
			cam.Dolly(dollySpeed)
		}
	})

	for !pipeline.ShouldClose() {
		pipeline.RenderFrame(scn, cam)
		pipeline.SwapBuffers()
		pipeline.PollEvents()
	}

	return nil
}
