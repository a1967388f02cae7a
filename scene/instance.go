package scene

import "github.com/achilleasa/scenecore/types"

// InstanceID identifies an instance within a scene's instance slice.
type InstanceID uint32

// Instance is a placement of a prototype in the scene. An instance owns no
// geometry; it is wholly owned by the scene and carries only a transform
// and a cached world-space bound.
type Instance struct {
	ID          InstanceID
	PrototypeID PrototypeID

	Transform    types.Mat4
	InvTransform types.Mat4

	// WorldBound is the prototype's local bound transformed through
	// Transform, recomputed whenever the transform changes.
	WorldBound types.AABB
}

func newInstance(id InstanceID, prototypeID PrototypeID, transform types.Mat4, localBound types.AABB) *Instance {
	inst := &Instance{
		ID:          id,
		PrototypeID: prototypeID,
	}
	inst.setTransform(transform, localBound)
	return inst
}

func (inst *Instance) setTransform(transform types.Mat4, localBound types.AABB) {
	inst.Transform = transform
	inst.InvTransform = transform.Inv()
	inst.WorldBound = types.TransformAABB(transform, localBound)
}
