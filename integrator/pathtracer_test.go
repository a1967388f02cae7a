package integrator

import (
	"testing"

	"github.com/achilleasa/scenecore/accel"
	"github.com/achilleasa/scenecore/scene"
	"github.com/achilleasa/scenecore/types"
)

func onePrototypeScene(t *testing.T) *scene.Scene {
	t.Helper()
	scn := scene.New()
	positions := []types.Vec3{
		{-5, -5, 0},
		{5, -5, 0},
		{5, 5, 0},
		{-5, 5, 0},
	}
	triangles := []scene.Triangle{{0, 1, 2}, {0, 2, 3}}
	protoID, err := scn.AddPrototype("backdrop", positions, nil, nil, triangles, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := scn.AddInstance(protoID, types.Ident4()); err != nil {
		t.Fatal(err)
	}
	return scn
}

func TestIntegratorRendersToCompletion(t *testing.T) {
	scn := onePrototypeScene(t)
	a, err := accel.New(scn)
	if err != nil {
		t.Fatal(err)
	}

	cam := types.NewOrbitCamera(types.Vec3{}, 20, 45)
	opts := DefaultOptions()
	opts.FrameW = 16
	opts.FrameH = 16
	opts.TileSize = 8
	opts.SamplesPerPixel = 2
	opts.NumWorkers = 2
	cam.SetupProjection(float32(opts.FrameW)/float32(opts.FrameH), 0.01, 1000.0)

	it := New(a, cam, opts, nil)
	it.Start()

	const maxIterations = 100000
	iterations := 0
	for !it.Done() && iterations < maxIterations {
		it.Poll()
		iterations++
	}
	if !it.Done() {
		t.Fatal("integrator failed to reach completion")
	}

	frame := it.Frame()
	if frame.W != opts.FrameW || frame.H != opts.FrameH {
		t.Fatalf("expected frame %dx%d, got %dx%d", opts.FrameW, opts.FrameH, frame.W, frame.H)
	}
	for i, p := range frame.Pixels {
		if p.Samples != opts.SamplesPerPixel {
			t.Fatalf("pixel %d: expected %d samples, got %d", i, opts.SamplesPerPixel, p.Samples)
		}
	}

	pixels := frame.ToRGBA8(opts.Exposure)
	if len(pixels) != int(opts.FrameW*opts.FrameH) {
		t.Fatalf("expected %d output pixels, got %d", opts.FrameW*opts.FrameH, len(pixels))
	}
}

func TestTracePathMissReturnsEnvironmentRadiance(t *testing.T) {
	scn := scene.New()
	a, err := accel.New(scn)
	if err != nil {
		t.Fatal(err)
	}
	env := DefaultSky()
	r := newRNG(7)
	ray := types.NewRay(types.Vec3{0, 0, 0}, types.Vec3{0, 1, 0})

	got := tracePath(ray, a, env, DefaultOptions(), r)
	want := env.Radiance(ray.Dir)
	if got != want {
		t.Fatalf("expected a ray through an empty scene to return the environment's radiance, got %v want %v", got, want)
	}
}
