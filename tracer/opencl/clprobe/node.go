// Package clprobe answers one narrow question at process startup: is there
// a usable OpenCL compute node on this machine at all? It started life as
// the teacher's general-purpose OpenCL device wrapper (able to build
// programs, load kernels, and allocate buffers for dispatch); accel/native
// only ever needs the enumeration half of that, so the dispatch machinery
// (program/kernel/buffer lifecycle) has been cut and what remains is
// reshaped around a single Enumerate call.
package clprobe

import (
	"fmt"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
)

// NodeKind classifies an enumerated compute node the way the underlying
// OpenCL driver reports it.
type NodeKind uint8

const (
	CPUNode NodeKind = 1 << iota
	GPUNode
	OtherNode
)

func (k NodeKind) String() string {
	switch k {
	case CPUNode:
		return "CPU"
	case GPUNode:
		return "GPU"
	case OtherNode:
		return "Other"
	}
	return "unknown"
}

// Node describes one compute device behind a Platform, with a rough
// throughput estimate used only for display — accel/native never ranks
// nodes, it only cares whether at least one exists.
type Node struct {
	Name string
	Kind NodeKind

	id cl.DeviceId

	computeUnits uint32
	clockMHz     uint32

	// Throughput is a rough GFlops estimate (computeUnits * clockMHz *
	// 2 ops/cycle), informational only.
	Throughput uint32
}

func (n Node) String() string {
	return fmt.Sprintf("%s (%s): %d compute units @ %d MHz, ~%d GFlops", n.Name, n.Kind, n.computeUnits, n.clockMHz, n.Throughput)
}

// measureThroughput queries the driver for the node's compute-unit count and
// clock speed and derives the Throughput estimate from them.
func (n *Node) measureThroughput() error {
	errCode := cl.GetDeviceInfo(n.id, cl.DEVICE_MAX_COMPUTE_UNITS, 4, unsafe.Pointer(&n.computeUnits), nil)
	if errCode != cl.SUCCESS {
		return fmt.Errorf("clprobe: node %q: could not query compute unit count (%s)", n.Name, errorName(errCode))
	}
	errCode = cl.GetDeviceInfo(n.id, cl.DEVICE_MAX_CLOCK_FREQUENCY, 4, unsafe.Pointer(&n.clockMHz), nil)
	if errCode != cl.SUCCESS {
		return fmt.Errorf("clprobe: node %q: could not query clock frequency (%s)", n.Name, errorName(errCode))
	}
	n.Throughput = n.computeUnits * n.clockMHz * 2 / 1000
	return nil
}

// errorName renders the small set of OpenCL error codes Enumerate can
// actually surface; the teacher's exhaustive table (covering program-build
// and kernel-dispatch failures too) went with the dispatch code it served.
func errorName(code cl.ErrorCode) string {
	switch code {
	case cl.SUCCESS:
		return "SUCCESS"
	case -1:
		return "DEVICE_NOT_FOUND"
	case -2:
		return "DEVICE_NOT_AVAILABLE"
	case -30:
		return "INVALID_VALUE"
	case -31:
		return "INVALID_DEVICE_TYPE"
	case -32:
		return "INVALID_PLATFORM"
	case -33:
		return "INVALID_DEVICE"
	default:
		return fmt.Sprintf("error code %d", code)
	}
}
