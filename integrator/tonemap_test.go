package integrator

import (
	"testing"

	"github.com/achilleasa/scenecore/types"
)

func TestTonemapZeroSamplesIsOpaqueBlack(t *testing.T) {
	got := Tonemap(types.Vec3{}, 0, 1.0)
	want := RGBA8{R: 0, G: 0, B: 0, A: 255}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestTonemapWhiteMapsTo255NotOverflow(t *testing.T) {
	got := Tonemap(types.Vec3{1, 1, 1}, 1, 1.0)
	if got.R != 255 || got.G != 255 || got.B != 255 {
		t.Fatalf("expected pure white to quantize to 255, got %+v", got)
	}
}

func TestTonemapAveragesAccumulatedSamples(t *testing.T) {
	accum := types.Vec3{2, 2, 2}
	got := Tonemap(accum, 2, 1.0)
	want := Tonemap(types.Vec3{1, 1, 1}, 1, 1.0)
	if got != want {
		t.Fatalf("expected dividing by sample count to match an equivalent single-sample average, got %+v vs %+v", got, want)
	}
}

func TestTonemapClampsFireflies(t *testing.T) {
	got := Tonemap(types.Vec3{1000, 1000, 1000}, 1, 1.0)
	want := Tonemap(types.Vec3{16, 16, 16}, 1, 1.0)
	if got != want {
		t.Fatalf("expected values above the firefly clamp to saturate identically to the clamp bound, got %+v vs %+v", got, want)
	}
}

func TestTonemapExposureBrightensLinearly(t *testing.T) {
	dim := Tonemap(types.Vec3{0.1, 0.1, 0.1}, 1, 1.0)
	bright := Tonemap(types.Vec3{0.1, 0.1, 0.1}, 1, 4.0)
	if bright.R <= dim.R {
		t.Fatalf("expected higher exposure to brighten the result: dim=%+v bright=%+v", dim, bright)
	}
}
