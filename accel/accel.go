package accel

import (
	"github.com/achilleasa/scenecore/accel/native"
	"github.com/achilleasa/scenecore/log"
	"github.com/achilleasa/scenecore/scene"
	"github.com/achilleasa/scenecore/types"
)

var accelLog = log.New("accel")

// Hit is the result of an Accelerator query: the world-space hit record
// plus the material bound to the prototype the ray struck, resolved by
// consulting the scene's prototype->material table so callers never have
// to do that lookup themselves.
type Hit struct {
	Record   types.HitRecord
	Material *scene.Material
}

// SceneView is the read surface New needs from a scene. *scene.Scene
// satisfies it directly; the build coordinator (package coordinator)
// satisfies it with an immutable snapshot instead, so a background build
// never reads live, concurrently-mutable scene state.
type SceneView interface {
	IterPrototypes() []*scene.Prototype
	IterInstances() []*scene.Instance
	Prototype(id scene.PrototypeID) (*scene.Prototype, bool)
	Generation() uint64
}

// Accelerator exposes one query surface over either construction-time
// implementation: the two-level TLAS+BLAS structure, or the linear
// instance-only Fallback. Both satisfy identical query semantics (spec
// §4.3): for a single prototype and N identity-transform instances, they
// return identical hit records for identical rays.
type Accelerator struct {
	tlas     *TLAS
	fallback *Fallback
	blas     map[scene.PrototypeID]*BLAS
	scn      SceneView
	built    uint64
}

// Options configures which query structure New builds. The zero value
// defers entirely to native.Available.
type Options struct {
	// ForceTLAS, when true, builds the two-level TLAS+BLAS structure
	// regardless of what native.Available reports. This exists because
	// native.Available is permanently false in any environment without an
	// OpenCL driver, which would otherwise leave the two-level path
	// permanently unselected and unexercised; callers that need it built
	// deterministically (the equivalence test in accel_test.go, future
	// native-backed builders) set this instead of relying on the probe.
	ForceTLAS bool
}

// New builds an Accelerator over the current state of scn using the default
// Options (native-probe selection). See NewWithOptions.
func New(scn SceneView) (*Accelerator, error) {
	return NewWithOptions(scn, Options{})
}

// NewWithOptions builds an Accelerator over the current state of scn. It
// selects the two-level path when opts.ForceTLAS is set or a native
// acceleration library is available (see accel/native), falling back to the
// linear instance-only path otherwise. In this environment native.Available
// always reports false, so without ForceTLAS the fallback path is what
// actually ships; the two-level path is still fully built and query-correct,
// it simply has no native library wired up yet to prefer it automatically
// (see native/probe.go's doc comment).
func NewWithOptions(scn SceneView, opts Options) (*Accelerator, error) {
	blas := make(map[scene.PrototypeID]*BLAS, len(scn.IterPrototypes()))
	for _, proto := range scn.IterPrototypes() {
		b, err := BuildBLAS(proto)
		if err != nil {
			return nil, err
		}
		blas[proto.ID] = b
	}

	instances := scn.IterInstances()
	a := &Accelerator{blas: blas, scn: scn, built: scn.Generation()}

	if opts.ForceTLAS || native.Available() {
		accelLog.Debugf("building two-level TLAS over %d instances (%d prototypes)", len(instances), len(blas))
		a.tlas = BuildTLAS(instances, blas)
	} else {
		accelLog.Debugf("no native acceleration library available; building instance-only fallback over %d instances", len(instances))
		a.fallback = BuildFallback(instances, blas)
	}

	return a, nil
}

// Stale reports whether the scene has mutated since this Accelerator was
// built, i.e. whether the caller should rebuild via New before trusting
// further queries. A snapshot-backed Accelerator (built by the build
// coordinator) has a frozen Generation and is never stale by this check;
// the coordinator tracks invalidation itself via its own cancellation flag.
func (a *Accelerator) Stale() bool {
	return a.scn.Generation() != a.built
}

// Hit intersects a world-space ray against the scene, returning the
// closest hit within interval with its bound material attached.
func (a *Accelerator) Hit(r types.Ray, interval types.Interval) (Hit, bool) {
	var record types.HitRecord
	var protoID scene.PrototypeID
	var ok bool

	if a.tlas != nil {
		record, protoID, ok = a.tlas.Hit(r, interval)
	} else {
		record, protoID, ok = a.fallback.Hit(r, interval)
	}
	if !ok {
		return Hit{}, false
	}

	var material *scene.Material
	if proto, found := a.scn.Prototype(protoID); found {
		material = proto.Material
	}

	return Hit{Record: record, Material: material}, true
}
