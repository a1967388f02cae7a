package coordinator

import "github.com/achilleasa/scenecore/scene"

// snapshot is the minimum data a build worker needs, cloned out of the live
// scene before handoff (spec §4.6's "Handoff" paragraph): prototype
// references are kept as shared pointers (geometry is immutable once built,
// so sharing is safe), while every instance is copied by value into a fresh
// *scene.Instance the worker owns outright — nothing it holds can be
// mutated by a concurrent SetInstanceTransform/BindMaterial call on the live
// scene.
type snapshot struct {
	prototypes map[scene.PrototypeID]*scene.Prototype
	instances  []*scene.Instance
	generation uint64
}

// snapshotScene clones scn's prototype table and instance list. It is the
// only state a build worker is ever given; it never receives scn itself.
func snapshotScene(scn *scene.Scene) *snapshot {
	protos := make(map[scene.PrototypeID]*scene.Prototype)
	for _, p := range scn.IterPrototypes() {
		protos[p.ID] = p
	}

	live := scn.IterInstances()
	instances := make([]*scene.Instance, len(live))
	for i, inst := range live {
		cp := *inst
		instances[i] = &cp
	}

	return &snapshot{
		prototypes: protos,
		instances:  instances,
		generation: scn.Generation(),
	}
}

func (s *snapshot) IterPrototypes() []*scene.Prototype {
	out := make([]*scene.Prototype, 0, len(s.prototypes))
	for _, p := range s.prototypes {
		out = append(out, p)
	}
	return out
}

func (s *snapshot) IterInstances() []*scene.Instance { return s.instances }

func (s *snapshot) Prototype(id scene.PrototypeID) (*scene.Prototype, bool) {
	p, ok := s.prototypes[id]
	return p, ok
}

// Generation is frozen at snapshot time; the coordinator tracks
// invalidation against the live scene separately (see build.go), so the
// Accelerator built from this snapshot is never considered stale by its own
// Stale() check.
func (s *snapshot) Generation() uint64 { return s.generation }
