package scene

import (
	"sync/atomic"

	"github.com/achilleasa/scenecore/log"
	"github.com/achilleasa/scenecore/types"
)

var sceneLog = log.New("scene")

// Scene is a set of prototypes (keyed by id, unique) and an ordered sequence
// of instances. It is logically immutable to consumers during a frame;
// structural edits bump the generation counter that C3/C5 caches compare
// against to detect invalidation.
type Scene struct {
	prototypes map[PrototypeID]*Prototype
	instances  []*Instance

	nextPrototypeID uint32
	nextInstanceID  uint32

	// generation is read with atomic.LoadUint64 so a build worker holding
	// a snapshot can cheaply poll for invalidation without locking.
	generation uint64
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{
		prototypes: make(map[PrototypeID]*Prototype),
	}
}

// Generation returns the current generation counter. It increases
// monotonically on any structural change (prototype/instance add, material
// rebind).
func (s *Scene) Generation() uint64 {
	return atomic.LoadUint64(&s.generation)
}

func (s *Scene) bumpGeneration() {
	atomic.AddUint64(&s.generation, 1)
}

// AddPrototype validates and registers a new prototype, returning an id
// unique over the scene's lifetime (ids are never reused).
func (s *Scene) AddPrototype(name string, positions []types.Vec3, normals []types.Vec3, uvs []types.Vec2, triangles []Triangle, material *Material) (PrototypeID, error) {
	id := PrototypeID(s.nextPrototypeID)
	proto, err := newPrototype(id, name, positions, normals, uvs, triangles, material)
	if err != nil {
		return 0, err
	}
	s.nextPrototypeID++
	s.prototypes[id] = proto
	s.bumpGeneration()
	sceneLog.Debugf("added prototype %d (%s): %d triangles", id, name, proto.TriangleCount())
	return id, nil
}

// AddInstance places a prototype in the scene with the given local-to-world
// transform. Fails with ErrUnknownPrototype if the id is not live.
func (s *Scene) AddInstance(prototypeID PrototypeID, transform types.Mat4) (InstanceID, error) {
	proto, ok := s.prototypes[prototypeID]
	if !ok {
		return 0, ErrUnknownPrototype
	}
	id := InstanceID(s.nextInstanceID)
	s.nextInstanceID++
	inst := newInstance(id, prototypeID, transform, proto.LocalBound)
	s.instances = append(s.instances, inst)
	s.bumpGeneration()
	return id, nil
}

// SetInstanceTransform updates an existing instance's transform in place,
// recomputing its cached world bound.
func (s *Scene) SetInstanceTransform(id InstanceID, transform types.Mat4) error {
	for _, inst := range s.instances {
		if inst.ID == id {
			proto, ok := s.prototypes[inst.PrototypeID]
			if !ok {
				return ErrUnknownPrototype
			}
			inst.setTransform(transform, proto.LocalBound)
			s.bumpGeneration()
			return nil
		}
	}
	return ErrUnknownPrototype
}

// BindMaterial replaces a prototype's material. Fails with
// ErrUnknownPrototype otherwise.
func (s *Scene) BindMaterial(prototypeID PrototypeID, material *Material) error {
	proto, ok := s.prototypes[prototypeID]
	if !ok {
		return ErrUnknownPrototype
	}
	proto.Material = material
	s.bumpGeneration()
	return nil
}

// Prototype looks up a prototype by id.
func (s *Scene) Prototype(id PrototypeID) (*Prototype, bool) {
	p, ok := s.prototypes[id]
	return p, ok
}

// IterPrototypes returns a stable-ordered (by id) snapshot of the scene's
// prototypes for the current generation.
func (s *Scene) IterPrototypes() []*Prototype {
	out := make([]*Prototype, 0, len(s.prototypes))
	for id := PrototypeID(0); id < PrototypeID(s.nextPrototypeID); id++ {
		if p, ok := s.prototypes[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// IterInstances returns the scene's instances in insertion order.
func (s *Scene) IterInstances() []*Instance {
	out := make([]*Instance, len(s.instances))
	copy(out, s.instances)
	return out
}

// TotalTriangleCount sums triangle_count(prototype(instance)) across every
// instance, i.e. the actual triangle count the renderer must process once
// instancing is expanded.
func (s *Scene) TotalTriangleCount() uint64 {
	var total uint64
	for _, inst := range s.instances {
		if proto, ok := s.prototypes[inst.PrototypeID]; ok {
			total += uint64(proto.TriangleCount())
		}
	}
	return total
}
