package raster

import (
	"github.com/achilleasa/scenecore/scene"
	"github.com/achilleasa/scenecore/types"
)

// CullScratch holds the per-frame working set for Cull: scratch vectors
// for visible indices and squared camera distances, preallocated once
// and reused across frames to avoid per-frame heap churn, per spec
// §4.5's explicit requirement.
type CullScratch struct {
	visible []uint32
	distSq  []float32
}

// NewCullScratch preallocates scratch storage sized for up to capacity
// instances; Cull grows it (rare, only on a scene that adds more
// instances than initially sized for) rather than allocating fresh
// slices every frame.
func NewCullScratch(capacity int) *CullScratch {
	return &CullScratch{
		visible: make([]uint32, 0, capacity),
		distSq:  make([]float32, 0, capacity),
	}
}

// Cull tests each instance's world-space AABB against the frustum,
// writing surviving indices (and their squared distance from the
// camera, needed by the LOD partition next) into the reused scratch
// buffers and returning them. The returned slices alias s's backing
// arrays and are only valid until the next Cull call.
func Cull(frustum types.Frustum, instances []*scene.Instance, cameraPos types.Vec3, s *CullScratch) (visible []uint32, distSq []float32) {
	s.visible = s.visible[:0]
	s.distSq = s.distSq[:0]

	for i, inst := range instances {
		if !frustum.IntersectsAABB(inst.WorldBound) {
			continue
		}
		d := inst.WorldBound.Center().Sub(cameraPos)
		s.visible = append(s.visible, uint32(i))
		s.distSq = append(s.distSq, d.Dot(d))
	}

	return s.visible, s.distSq
}
