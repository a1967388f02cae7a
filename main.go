package main

import (
	"os"

	"github.com/achilleasa/scenecore/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "scenecore"
	app.Usage = "instance, path-trace and interactively preview triangle-mesh scenes"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "scene-info",
			Usage:     "load a wavefront OBJ mesh, instance it on a grid, and print scene statistics",
			ArgsUsage: "mesh.obj",
			Flags:     cmd.SceneFlags,
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:   "probe-native",
			Usage:  "report whether a native acceleration-structure library is available",
			Action: cmd.ProbeNativeAcceleration,
		},
		{
			Name:   "render",
			Usage:  "render scene",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:        "frame",
					Usage:       "path-trace a single frame to a PNG file",
					ArgsUsage:   "mesh.obj",
					Description: `Render a single frame.`,
					Flags: append(append([]cli.Flag{}, cmd.SceneFlags...),
						cli.IntFlag{
							Name:  "width",
							Value: 512,
							Usage: "frame width",
						},
						cli.IntFlag{
							Name:  "height",
							Value: 512,
							Usage: "frame height",
						},
						cli.IntFlag{
							Name:  "spp",
							Value: 16,
							Usage: "samples per pixel",
						},
						cli.Float64Flag{
							Name:  "exposure",
							Value: 1.0,
							Usage: "camera exposure for tone-mapping",
						},
						cli.Float64Flag{
							Name:  "distance",
							Value: 20.0,
							Usage: "orbit camera distance from the scene origin",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame.png",
							Usage: "image filename for the rendered frame",
						},
					),
					Action: cmd.RenderFrame,
				},
				{
					Name:        "interactive",
					Usage:       "open an interactive rasterized preview of the scene",
					ArgsUsage:   "mesh.obj",
					Description: ``,
					Flags: append(append([]cli.Flag{}, cmd.SceneFlags...),
						cli.IntFlag{
							Name:  "width",
							Value: 1280,
							Usage: "frame width",
						},
						cli.IntFlag{
							Name:  "height",
							Value: 720,
							Usage: "frame height",
						},
						cli.Float64Flag{
							Name:  "distance",
							Value: 20.0,
							Usage: "orbit camera distance from the scene origin",
						},
					),
					Action: cmd.RenderInteractive,
				},
			},
		},
	}

	app.Run(os.Args)
}
