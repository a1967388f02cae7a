package clprobe

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
)

const (
	maxPlatforms = 100
	maxNodes     = 100
	infoBufSize  = 1024
)

// Platform is one OpenCL platform (a driver/vendor install) and the compute
// nodes it exposes.
type Platform struct {
	Name    string
	Vendor  string
	Version string
	Nodes   []*Node
}

func (p Platform) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) %s\n", p.Name, p.Vendor, p.Version)
	for i, n := range p.Nodes {
		fmt.Fprintf(&b, "  [%d] %s\n", i, n.String())
	}
	return b.String()
}

// Enumerate walks every OpenCL platform the driver reports and every CPU/GPU
// node behind it. An empty, nil-error result means the driver loaded fine
// but found nothing to report; accel/native treats that the same as an
// error — either way there is no native backend to hand work to.
func Enumerate() ([]Platform, error) {
	platformIDs := make([]cl.PlatformID, maxPlatforms)
	var platformCount uint32
	cl.GetPlatformIDs(uint32(len(platformIDs)), &platformIDs[0], &platformCount)

	buf := make([]byte, infoBufSize)
	var bufLen uint64

	platforms := make([]Platform, int(platformCount))
	for i := 0; i < int(platformCount); i++ {
		pid := platformIDs[i]

		cl.GetPlatformInfo(pid, cl.PLATFORM_NAME, infoBufSize, unsafe.Pointer(&buf[0]), &bufLen)
		platforms[i].Name = string(buf[:bufLen-1])

		cl.GetPlatformInfo(pid, cl.PLATFORM_VENDOR, infoBufSize, unsafe.Pointer(&buf[0]), &bufLen)
		platforms[i].Vendor = string(buf[:bufLen-1])

		cl.GetPlatformInfo(pid, cl.PLATFORM_VERSION, infoBufSize, unsafe.Pointer(&buf[0]), &bufLen)
		platforms[i].Version = string(buf[:bufLen-1])

		nodes, err := enumerateNodes(pid, cl.DEVICE_TYPE_CPU, CPUNode, buf, &bufLen)
		if err != nil {
			return nil, err
		}
		platforms[i].Nodes = append(platforms[i].Nodes, nodes...)

		nodes, err = enumerateNodes(pid, cl.DEVICE_TYPE_GPU, GPUNode, buf, &bufLen)
		if err != nil {
			return nil, err
		}
		platforms[i].Nodes = append(platforms[i].Nodes, nodes...)
	}

	return platforms, nil
}

func enumerateNodes(pid cl.PlatformID, deviceType uint64, kind NodeKind, buf []byte, bufLen *uint64) ([]*Node, error) {
	ids := make([]cl.DeviceId, maxNodes)
	var count uint32
	cl.GetDeviceIDs(pid, deviceType, uint32(len(ids)), &ids[0], &count)

	nodes := make([]*Node, 0, count)
	for i := 0; i < int(count); i++ {
		cl.GetDeviceInfo(ids[i], cl.DEVICE_NAME, infoBufSize, unsafe.Pointer(&buf[0]), bufLen)
		n := &Node{Name: string(buf[:*bufLen-1]), id: ids[i], Kind: kind}
		if err := n.measureThroughput(); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
