package cmd

import (
	"image"
	"image/png"
	"os"
	"time"

	"github.com/achilleasa/scenecore/accel"
	"github.com/achilleasa/scenecore/integrator"
	"github.com/achilleasa/scenecore/types"
	"github.com/urfave/cli"
)

// RenderFrame path-traces a single frame of the scene named by the
// command's argument and writes it to a PNG file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	scn, err := loadScene(ctx)
	if err != nil {
		return err
	}

	opts := integrator.DefaultOptions()
	opts.FrameW = uint32(ctx.Int("width"))
	opts.FrameH = uint32(ctx.Int("height"))
	opts.SamplesPerPixel = uint32(ctx.Int("spp"))
	opts.Exposure = float32(ctx.Float64("exposure"))

	cam := types.NewOrbitCamera(types.Vec3{}, float32(ctx.Float64("distance")), 45.0)
	cam.SetupProjection(float32(opts.FrameW)/float32(opts.FrameH), 0.01, 1000.0)

	a, err := accel.New(scn)
	if err != nil {
		return err
	}

	it := integrator.New(a, cam, opts, nil)
	it.Start()

	start := time.Now()
	for !it.Done() {
		it.Poll()
		time.Sleep(time.Millisecond)
	}
	logger.Noticef("rendered %d spp in %s", opts.SamplesPerPixel, time.Since(start))

	return writePNG(it.Frame(), opts.Exposure, ctx.String("out"))
}

func writePNG(frame *integrator.Frame, exposure float32, path string) error {
	pixels := frame.ToRGBA8(exposure)

	img := image.NewNRGBA(image.Rect(0, 0, int(frame.W), int(frame.H)))
	for y := 0; y < int(frame.H); y++ {
		for x := 0; x < int(frame.W); x++ {
			p := pixels[y*int(frame.W)+x]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = p.R
			img.Pix[i+1] = p.G
			img.Pix[i+2] = p.B
			img.Pix[i+3] = p.A
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", path)
	return nil
}
