package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/scenecore/accel/native"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ProbeNativeAcceleration reports whether a native acceleration-structure
// library is available (see accel/native) by enumerating the same
// platform/device information the OpenCL-backed probe walks, so a user can
// see why the two-level TLAS+BLAS path did or didn't get selected at build
// time.
func ProbeNativeAcceleration(ctx *cli.Context) error {
	setupLogging(ctx)

	platforms, ok := native.Probe()
	if !ok {
		logger.Notice("no native acceleration library available; the instance-only fallback accelerator will be used")
		return nil
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Platform", "Version", "Devices"})
	for _, p := range platforms {
		table.Append([]string{p.Name, p.Version, fmt.Sprintf("%d", len(p.Nodes))})
	}
	table.Render()
	logger.Noticef("native acceleration platform(s) detected:\n%s", buf.String())

	return nil
}
