package raster

import (
	"testing"

	"github.com/achilleasa/scenecore/scene"
	"github.com/achilleasa/scenecore/types"
)

func instanceAt(id scene.InstanceID, protoID scene.PrototypeID, center types.Vec3) *scene.Instance {
	bound := types.AABB{Min: center.Sub(types.Vec3{0.5, 0.5, 0.5}), Max: center.Add(types.Vec3{0.5, 0.5, 0.5})}
	return &scene.Instance{
		ID:          id,
		PrototypeID: protoID,
		Transform:   types.Translate4(center),
		WorldBound:  bound,
	}
}

func TestCullKeepsAllWithDefaultFrustum(t *testing.T) {
	instances := []*scene.Instance{
		instanceAt(0, 0, types.Vec3{0, 0, 0}),
		instanceAt(1, 0, types.Vec3{10, 0, 0}),
		instanceAt(2, 0, types.Vec3{-100, 50, 30}),
	}
	scratch := NewCullScratch(4)
	visible, distSq := Cull(types.DefaultFrustum(), instances, types.Vec3{}, scratch)

	if len(visible) != len(instances) {
		t.Fatalf("expected all %d instances visible under the default frustum, got %d", len(instances), len(visible))
	}
	if len(distSq) != len(visible) {
		t.Fatalf("expected one distance per visible instance, got %d distances for %d visible", len(distSq), len(visible))
	}
}

func TestCullReusesScratchAcrossCalls(t *testing.T) {
	scratch := NewCullScratch(4)
	first := []*scene.Instance{instanceAt(0, 0, types.Vec3{0, 0, 0}), instanceAt(1, 0, types.Vec3{1, 0, 0})}
	Cull(types.DefaultFrustum(), first, types.Vec3{}, scratch)

	second := []*scene.Instance{instanceAt(0, 0, types.Vec3{0, 0, 0})}
	visible, distSq := Cull(types.DefaultFrustum(), second, types.Vec3{}, scratch)
	if len(visible) != 1 || len(distSq) != 1 {
		t.Fatalf("expected scratch to shrink back to 1 entry on a smaller second call, got %d/%d", len(visible), len(distSq))
	}
}

func TestCullDistancesAreSquaredFromCamera(t *testing.T) {
	instances := []*scene.Instance{instanceAt(0, 0, types.Vec3{3, 4, 0})}
	scratch := NewCullScratch(4)
	_, distSq := Cull(types.DefaultFrustum(), instances, types.Vec3{}, scratch)
	if len(distSq) != 1 {
		t.Fatalf("expected 1 distance, got %d", len(distSq))
	}
	if distSq[0] != 25 {
		t.Fatalf("expected squared distance 3^2+4^2=25, got %f", distSq[0])
	}
}
