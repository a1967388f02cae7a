// Package native probes for a usable hardware acceleration-structure
// library at process startup. The probe is a repurposed form of the
// teacher's opencl platform/device enumeration (tracer/opencl/clprobe):
// where the teacher queried OpenCL platforms to pick a compute device,
// here the same enumeration answers a narrower question — is there any
// platform at all — since scenecore has no native BVH builder of its own
// to hand work to yet, only the in-process Go one (see accel.go).
package native

import (
	"github.com/achilleasa/scenecore/tracer/opencl/clprobe"
)

// Available reports whether any OpenCL platform could be enumerated on
// this machine. accel.New consults this by default to decide between the
// two-level TLAS+BLAS build path and the always-available instance-only
// fallback; today it only ever returns false in this environment, since no
// OpenCL driver is installed, but the probe itself is real so that wiring a
// native builder in later is a matter of branching on this result rather
// than threading a new capability signal through the constructor. Callers
// that need the two-level path built and exercised regardless of what this
// reports (tests, benchmarking) use accel.Options.ForceTLAS instead.
func Available() bool {
	_, ok := Probe()
	return ok
}

// Probe enumerates OpenCL platform/node information, returning ok=false if
// no platform responded (no drivers installed, or running in an
// environment without GPU passthrough). Errors from the underlying
// enumeration are treated as unavailability rather than surfaced, since
// callers only ever need the yes/no answer.
func Probe() ([]clprobe.Platform, bool) {
	platforms, err := clprobe.Enumerate()
	if err != nil || len(platforms) == 0 {
		return nil, false
	}
	return platforms, true
}
