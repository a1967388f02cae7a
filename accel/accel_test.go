package accel

import (
	"testing"

	"github.com/achilleasa/scenecore/scene"
	"github.com/achilleasa/scenecore/types"
)

func unitQuadScene(t *testing.T) *scene.Scene {
	t.Helper()
	scn := scene.New()
	positions := []types.Vec3{
		{-1, -1, 0},
		{1, -1, 0},
		{1, 1, 0},
		{-1, 1, 0},
	}
	triangles := []scene.Triangle{{0, 1, 2}, {0, 2, 3}}
	protoID, err := scn.AddPrototype("quad", positions, nil, nil, triangles, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := scn.AddInstance(protoID, types.Ident4()); err != nil {
		t.Fatal(err)
	}
	return scn
}

func TestNewBuildsOverEveryPrototype(t *testing.T) {
	scn := unitQuadScene(t)
	a, err := New(scn)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.blas) != 1 {
		t.Fatalf("expected 1 BLAS, got %d", len(a.blas))
	}
	if a.fallback == nil {
		t.Fatal("expected fallback path since native acceleration is unavailable")
	}
}

func TestHitFindsCenteredQuad(t *testing.T) {
	scn := unitQuadScene(t)
	a, err := New(scn)
	if err != nil {
		t.Fatal(err)
	}

	ray := types.NewRay(types.Vec3{0, 0, 5}, types.Vec3{0, 0, -1})
	hit, ok := a.Hit(ray, types.PositiveInterval(1e-4))
	if !ok {
		t.Fatal("expected ray through quad center to hit")
	}
	if hit.Record.T != 5 {
		t.Fatalf("expected hit at t=5, got %f", hit.Record.T)
	}
	if hit.Material == nil {
		t.Fatal("expected hit to resolve the prototype's bound material")
	}
}

func TestHitMissesOutsideQuad(t *testing.T) {
	scn := unitQuadScene(t)
	a, err := New(scn)
	if err != nil {
		t.Fatal(err)
	}

	ray := types.NewRay(types.Vec3{10, 10, 5}, types.Vec3{0, 0, -1})
	if _, ok := a.Hit(ray, types.PositiveInterval(1e-4)); ok {
		t.Fatal("expected ray outside quad bounds to miss")
	}
}

// multiInstanceQuadScene builds a scene with a single quad prototype
// replicated as n translation-only instances at distinct depths along Z,
// so a ray down the Z axis can land on a known instance by index.
func multiInstanceQuadScene(t *testing.T, n int) (*scene.Scene, []types.Vec3) {
	t.Helper()
	scn := scene.New()
	positions := []types.Vec3{
		{-1, -1, 0},
		{1, -1, 0},
		{1, 1, 0},
		{-1, 1, 0},
	}
	triangles := []scene.Triangle{{0, 1, 2}, {0, 2, 3}}
	protoID, err := scn.AddPrototype("quad", positions, nil, nil, triangles, nil)
	if err != nil {
		t.Fatal(err)
	}

	centers := make([]types.Vec3, n)
	for i := 0; i < n; i++ {
		z := float32(-10 * i)
		centers[i] = types.Vec3{float32(3 * i), 0, z}
		xform := types.Translate4(centers[i])
		if _, err := scn.AddInstance(protoID, xform); err != nil {
			t.Fatal(err)
		}
	}
	return scn, centers
}

// TestTLASMatchesFallback is the two-level vs. instance-only equivalence
// check (spec §8): for a single prototype replicated as N translation-only
// instances, TLAS and Fallback must agree on every hit record for the same
// rays.
func TestTLASMatchesFallback(t *testing.T) {
	const n = 6
	scn, centers := multiInstanceQuadScene(t, n)

	tlasAccel, err := NewWithOptions(scn, Options{ForceTLAS: true})
	if err != nil {
		t.Fatal(err)
	}
	if tlasAccel.tlas == nil {
		t.Fatal("expected ForceTLAS to select the two-level path")
	}

	fallbackAccel, err := New(scn)
	if err != nil {
		t.Fatal(err)
	}
	if fallbackAccel.fallback == nil {
		t.Fatal("expected default construction to select the fallback path in this environment")
	}

	rays := make([]types.Ray, 0, n+2)
	for _, c := range centers {
		rays = append(rays, types.NewRay(types.Vec3{c[0], c[1], c[2] + 5}, types.Vec3{0, 0, -1}))
	}
	// A ray that should miss every instance.
	rays = append(rays, types.NewRay(types.Vec3{1000, 1000, 5}, types.Vec3{0, 0, -1}))

	for i, ray := range rays {
		tHit, tOk := tlasAccel.Hit(ray, types.PositiveInterval(1e-4))
		fHit, fOk := fallbackAccel.Hit(ray, types.PositiveInterval(1e-4))

		if tOk != fOk {
			t.Fatalf("ray %d: TLAS hit=%v, Fallback hit=%v", i, tOk, fOk)
		}
		if !tOk {
			continue
		}
		if tHit.Record != fHit.Record {
			t.Fatalf("ray %d: TLAS record %+v != Fallback record %+v", i, tHit.Record, fHit.Record)
		}
		if tHit.Material != fHit.Material {
			t.Fatalf("ray %d: TLAS material %v != Fallback material %v", i, tHit.Material, fHit.Material)
		}
	}
}

func TestStaleReportsSceneMutation(t *testing.T) {
	scn := unitQuadScene(t)
	a, err := New(scn)
	if err != nil {
		t.Fatal(err)
	}
	if a.Stale() {
		t.Fatal("freshly built accelerator should not be stale")
	}

	if _, err := scn.AddInstance(0, types.Ident4()); err != nil {
		t.Fatal(err)
	}
	if !a.Stale() {
		t.Fatal("expected accelerator to report stale after a scene edit")
	}
}
