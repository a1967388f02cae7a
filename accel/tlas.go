package accel

import (
	"github.com/achilleasa/scenecore/scene"
	"github.com/achilleasa/scenecore/types"
)

// instanceItem is the TLAS build-time view of a scene instance: its world
// bound and centroid, the two things the generic builder needs, plus enough
// identity to resolve the BLAS and transform on a hit.
type instanceItem struct {
	bounds       types.AABB
	centroid     types.Vec3
	instanceID   scene.InstanceID
	prototypeID  scene.PrototypeID
	transform    types.Mat4
	invTransform types.Mat4
}

func (i instanceItem) Bounds() types.AABB   { return i.bounds }
func (i instanceItem) Centroid() types.Vec3 { return i.bounds.Center() }

// TLAS is a top-level acceleration structure over scene instances, each
// leaf referencing a prototype's BLAS plus the instance's affine transform.
type TLAS struct {
	nodes     []Node
	instances []instanceItem
	blas      map[scene.PrototypeID]*BLAS
}

// BuildTLAS builds a TLAS over every instance in instances, resolving each
// instance's geometry through blasByPrototype (already-built BLAS entries,
// one per distinct prototype actually referenced).
func BuildTLAS(instances []*scene.Instance, blasByPrototype map[scene.PrototypeID]*BLAS) *TLAS {
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

	return &TLAS{
		nodes:     Build(items),
		instances: items,
		blas:      blasByPrototype,
	}
}

// Hit intersects a world-space ray against the TLAS. On a leaf, the ray is
// transformed into the instance's local space by its inverse transform
// (origin as a point, direction as a vector), the corresponding BLAS is
// queried, and a resulting hit's point/normal are transformed back to world
// space — the normal via the inverse-transpose of the upper 3x3 for
// correctness under non-uniform scale.
func (t *TLAS) Hit(r types.Ray, interval types.Interval) (types.HitRecord, scene.PrototypeID, bool) {
	if len(t.nodes) == 0 {
		return types.HitRecord{}, 0, false
	}

	var best types.HitRecord
	var bestProto scene.PrototypeID
	hitAny := false
	closest := interval

	Traverse(t.nodes, r, &closest, func(firstPrim, count uint32) {
		for i := firstPrim; i < firstPrim+count; i++ {
			inst := &t.instances[i]
			blas, ok := t.blas[inst.prototypeID]
			if !ok {
				continue
			}

			// The instance transform may carry non-uniform scale, so
			// the local ray's direction is rescaled relative to the
			// world ray's unit direction; track that scale factor
			// to convert t between the two parametrizations rather
			// than assuming local t == world t.
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
	})

	return best, bestProto, hitAny
}

// Bounds returns the root bound of the TLAS, equal to the union of
// transformed BLAS bounds by construction.
func (t *TLAS) Bounds() types.AABB {
	if len(t.nodes) == 0 {
		return types.EmptyAABB()
	}
	return t.nodes[0].Bounds
}
