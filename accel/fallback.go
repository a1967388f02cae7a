package accel

import (
	"github.com/achilleasa/scenecore/scene"
	"github.com/achilleasa/scenecore/types"
)

// Fallback is the instance-only acceleration structure used when no native
// TLAS library is available: a single flat list of instances, each with its
// own BLAS, intersected by a brute-force loop rather than a top-level tree.
// Grounded on original_source's instanced_geometry_bvh.rs, whose top-level
// traversal never actually worked (its authors fell back to exactly this
// linear loop via an unsafe downcast hack); this is that same linear-loop
// path, implemented as the designated primary fallback rather than an
// accidental one. Complexity is O(N·log P) per ray for N instances of P
// triangles each — acceptable up to hundreds of instances.
type Fallback struct {
	instances []instanceItem
	blas      map[scene.PrototypeID]*BLAS
}

// BuildFallback constructs the instance-only accelerator. No tree is built
// over the instances; they are simply retained as a slice.
func BuildFallback(instances []*scene.Instance, blasByPrototype map[scene.PrototypeID]*BLAS) *Fallback {
	items := make([]instanceItem, len(instances))
	for i, inst := range instances {
		items[i] = instanceItem{
			bounds:       inst.WorldBound,
			instanceID:   inst.ID,
			prototypeID:  inst.PrototypeID,
			transform:    inst.Transform,
			invTransform: inst.InvTransform,
		}
	}
	return &Fallback{instances: items, blas: blasByPrototype}
}

// Hit exposes identical query semantics to TLAS.Hit: for a scene with a
// single prototype and N identity-transform instances, the two must return
// identical hit records for identical rays.
func (f *Fallback) Hit(r types.Ray, interval types.Interval) (types.HitRecord, scene.PrototypeID, bool) {
	var best types.HitRecord
	var bestProto scene.PrototypeID
	hitAny := false
	closest := interval

	for i := range f.instances {
		inst := &f.instances[i]

		// Cheap world-space early reject before paying for the
		// transform + BLAS query.
		if !inst.bounds.Hit(r, closest) {
			continue
		}

		blas, ok := f.blas[inst.prototypeID]
		if !ok {
			continue
		}

		localOrigin := inst.invTransform.TransformPoint(r.Origin)
		localDirRaw := inst.invTransform.TransformVector(r.Dir)
		scale := localDirRaw.Len()
		if scale == 0 {
			continue
		}
		localRay := types.NewRay(localOrigin, localDirRaw.Mul(1.0/scale))
		localInterval := types.Interval{Min: closest.Min * scale, Max: closest.Max * scale}

		hit, ok := blas.Hit(localRay, localInterval)
		if !ok {
			continue
		}

		worldT := hit.T / scale
		worldPoint := r.At(worldT)
		normalMat := inst.invTransform.Mat3().Transpose()
		worldNormal := normalMat.Mul3x1(hit.Normal).Normalize()

		best = types.HitRecord{
			T:              worldT,
			Point:          worldPoint,
			Normal:         worldNormal,
			UV:             hit.UV,
			InstanceIndex:  uint32(inst.instanceID),
			PrimitiveIndex: hit.PrimitiveIndex,
		}
		bestProto = inst.prototypeID
		hitAny = true
		closest.Max = worldT
	}

	return best, bestProto, hitAny
}
